// Package postgres persists snapshots in PostgreSQL via Grove ORM.
// Each of the eight entity collections is stored as one JSONB row,
// upserted on save. Only the latest snapshot is kept.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/state"
)

// compile-time interface check
var _ bridge.Bridge = (*Bridge)(nil)

// Bridge implements bridge.Bridge using PostgreSQL via Grove ORM.
type Bridge struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL bridge backed by Grove ORM.
func New(db *grove.DB) *Bridge {
	return &Bridge{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (b *Bridge) DB() *grove.DB { return b.db }

// Migrate creates the snapshot table using the grove orchestrator.
func (b *Bridge) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(b.pg)
	if err != nil {
		return fmt.Errorf("khata/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("khata/postgres: migration failed: %w", err)
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

	Name      string          `grove:"name,pk"`
	Payload   json.RawMessage `grove:"payload,type:jsonb"`
	UpdatedAt time.Time       `grove:"updated_at"`
}

func (b *Bridge) Load(ctx context.Context) (*state.Snapshot, error) {
	snap := &state.Snapshot{}

	for name, target := range collectionTargets(snap) {
		m := new(collectionModel)
		err := b.pg.NewSelect(m).
			Where("name = $1", name).
			Scan(ctx)
		if err != nil {
			if isNoRows(err) {
				continue
			}
			return nil, fmt.Errorf("khata/postgres: load %s: %w", name, err)
		}

		if err := json.Unmarshal(m.Payload, target); err != nil {
			return nil, fmt.Errorf("khata/postgres: decode %s: %w", name, err)
		}
	}

	return snap, nil
}

func (b *Bridge) Save(ctx context.Context, snap *state.Snapshot) error {
	t := now()

	for name, target := range collectionTargets(snap) {
		payload, err := json.Marshal(target)
		if err != nil {
			return fmt.Errorf("khata/postgres: encode %s: %w", name, err)
		}

		m := &collectionModel{
			Name:      name,
			Payload:   payload,
			UpdatedAt: t,
		}

		_, err = b.pg.NewInsert(m).
			OnConflict("(name) DO UPDATE").
			Set("payload = EXCLUDED.payload").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("khata/postgres: save %s: %w", name, err)
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

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}
