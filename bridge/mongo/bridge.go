// Package mongo persists snapshots in MongoDB via Grove ORM. Each of
// the eight entity collections is stored as one document carrying the
// JSON-encoded payload, upserted on save.
package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/state"
)

// colCollections holds the latest snapshot, one document per collection.
const colCollections = "khata_collections"

// compile-time interface check
var _ bridge.Bridge = (*Bridge)(nil)

// Bridge implements bridge.Bridge using MongoDB via Grove ORM.
type Bridge struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB bridge backed by Grove ORM.
func New(db *grove.DB) *Bridge {
	return &Bridge{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (b *Bridge) DB() *grove.DB { return b.db }

// Migrate creates indexes for the snapshot collection.
func (b *Bridge) Migrate(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
	}

	_, err := b.mdb.Collection(colCollections).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("khata/mongo: migrate %s indexes: %w", colCollections, err)
	}
	return nil
}

// Ping checks database connectivity.
func (b *Bridge) Ping(ctx context.Context) error {
	return b.db.Ping(ctx)
}

// Close closes the database connection.
func (b *Bridge) Close() error {
	return b.db.Close()
}

type collectionModel struct {
	grove.BaseModel `grove:"table:khata_collections"`

	Name      string    `grove:"name,pk"    bson:"_id"`
	Payload   string    `grove:"payload"    bson:"payload"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func (b *Bridge) Load(ctx context.Context) (*state.Snapshot, error) {
	snap := &state.Snapshot{}

	for name, target := range collectionTargets(snap) {
		var m collectionModel
		err := b.mdb.NewFind(&m).
			Filter(bson.M{"_id": name}).
			Scan(ctx)
		if err != nil {
			if isNoDocuments(err) {
				continue
			}
			return nil, fmt.Errorf("khata/mongo: load %s: %w", name, err)
		}

		if err := json.Unmarshal([]byte(m.Payload), target); err != nil {
			return nil, fmt.Errorf("khata/mongo: decode %s: %w", name, err)
		}
	}

	return snap, nil
}

func (b *Bridge) Save(ctx context.Context, snap *state.Snapshot) error {
	t := now()

	for name, target := range collectionTargets(snap) {
		payload, err := json.Marshal(target)
		if err != nil {
			return fmt.Errorf("khata/mongo: encode %s: %w", name, err)
		}

		m := &collectionModel{
			Name:      name,
			Payload:   string(payload),
			UpdatedAt: t,
		}

		_, err = b.mdb.NewUpdate(m).
			Filter(bson.M{"_id": m.Name}).
			SetUpdate(bson.M{"$set": bson.M{
				"_id":        m.Name,
				"payload":    m.Payload,
				"updated_at": m.UpdatedAt,
			}}).
			Upsert().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("khata/mongo: save %s: %w", name, err)
		}
	}

	return nil
}

// collectionTargets maps the eight snapshot collection names to their
// slice pointers, for symmetric load/save handling.
func collectionTargets(snap *state.Snapshot) map[string]any {
	return map[string]any{
		"transactions": &snap.Transactions,
		"items":        &snap.Items,
		"expenses":     &snap.Expenses,
		"buyers":       &snap.Buyers,
		"suppliers":    &snap.Suppliers,
		"cheques":      &snap.Cheques,
		"auditLogs":    &snap.AuditLogs,
		"whatsappLogs": &snap.WhatsAppLogs,
	}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}
