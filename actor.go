package khata

import (
	"context"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/types"
)

type actorKey struct{}

// Actor identifies the user performing an operation, recorded on every
// audit entry. Attach it to the context with WithActor.
type Actor = audit.Actor

// WithActor returns a context carrying the acting user's identity.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// actorFrom extracts the acting user from the context, defaulting to
// the system actor when none was attached.
func actorFrom(ctx context.Context) Actor {
	if v := ctx.Value(actorKey{}); v != nil {
		if a, ok := v.(Actor); ok {
			return a
		}
	}
	return Actor{
		UserID: "system",
		Role:   types.RoleSuperAdmin,
		Branch: types.BranchMain,
	}
}
