package audit

import (
	"log/slog"
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Sink receives completed audit entries. The engine wires this to the
// entity store's append-only audit collection.
type Sink func(Log)

// Recorder builds and emits audit entries for engine mutations.
// Recording never fails: a filtered-out action is silently dropped and
// the sink is expected to be infallible.
type Recorder struct {
	sink    Sink
	logger  *slog.Logger
	enabled map[string]bool // nil means all actions enabled
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger for the recorder.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithEnabledActions sets which actions to audit.
// If not called, all actions are audited.
func WithEnabledActions(actions ...string) Option {
	return func(r *Recorder) {
		r.enabled = make(map[string]bool)
		for _, action := range actions {
			r.enabled[action] = true
		}
	}
}

// WithDisabledActions sets which actions to skip.
func WithDisabledActions(actions ...string) Option {
	return func(r *Recorder) {
		if r.enabled == nil {
			// Start with all enabled
			r.enabled = make(map[string]bool)
			for _, action := range AllActions() {
				r.enabled[action] = true
			}
		}
		// Disable specified actions
		for _, action := range actions {
			delete(r.enabled, action)
		}
	}
}

// NewRecorder creates a Recorder writing entries to sink.
func NewRecorder(sink Sink, opts ...Option) *Recorder {
	r := &Recorder{
		sink:   sink,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Actor identifies who performed a mutation.
type Actor struct {
	UserID string
	Role   types.UserRole
	Branch types.Branch
}

// Entry is the recorder input for a single mutation.
type Entry struct {
	Action   string
	Target   string
	OldValue string
	NewValue string
	Severity Severity
}

// Record appends one audit entry for the given actor and mutation.
// Returns the stored entry, or nil when the action is filtered out.
func (r *Recorder) Record(actor Actor, e Entry) *Log {
	if !r.shouldAudit(e.Action) {
		return nil
	}

	if e.Severity == "" {
		e.Severity = SeverityLow
	}

	entry := Log{
		ID:        id.NewAuditLogID(),
		UserID:    actor.UserID,
		UserRole:  actor.Role,
		Branch:    actor.Branch,
		Action:    e.Action,
		Target:    e.Target,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		Timestamp: time.Now().UTC(),
		Severity:  e.Severity,
	}

	r.sink(entry)

	r.logger.Debug("audit entry recorded",
		"action", entry.Action,
		"target", entry.Target,
		"severity", entry.Severity,
		"user_id", entry.UserID,
	)

	return &entry
}

func (r *Recorder) shouldAudit(action string) bool {
	if r.enabled == nil {
		return true
	}

	return r.enabled[action]
}
