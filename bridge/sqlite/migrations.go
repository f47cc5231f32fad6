package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Khata snapshot bridge.
var Migrations = migrate.NewGroup("khata")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_khata_collections",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS khata_collections (
    name       TEXT PRIMARY KEY,
    payload    TEXT NOT NULL DEFAULT 'null',
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS khata_collections`)
				return err
			},
		},
	)
}
