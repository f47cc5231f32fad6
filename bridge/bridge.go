// Package bridge defines the snapshot persistence contract. The engine
// is persistence-agnostic: it loads once at startup and saves the full
// snapshot after mutations, best-effort. A bridge failure never rolls
// back in-memory state.
package bridge

import (
	"context"
	"time"

	"github.com/xraph/khata/state"
)

// FormatVersion is the backup document format version.
const FormatVersion = "2.4.1"

// Bridge persists and restores full store snapshots.
type Bridge interface {
	// Load fetches the last persisted snapshot. A bridge with no data
	// returns an empty snapshot, not an error. The caller merges the
	// result per collection.
	Load(ctx context.Context) (*state.Snapshot, error)

	// Save persists the snapshot, replacing whatever was stored before.
	// Only the latest snapshot matters; there is no history.
	Save(ctx context.Context, snap *state.Snapshot) error

	// Ping checks the bridge is reachable.
	Ping(ctx context.Context) error

	// Close releases bridge resources.
	Close() error
}

// Document is the portable backup file format: a versioned envelope
// around the eight entity collections.
type Document struct {
	Version     string         `json:"version"`
	Timestamp   time.Time      `json:"timestamp"`
	Source      string         `json:"source"`
	Collections state.Snapshot `json:"collections"`
}

// NewDocument wraps a snapshot in a backup envelope stamped now.
func NewDocument(source string, snap *state.Snapshot) *Document {
	return &Document{
		Version:     FormatVersion,
		Timestamp:   time.Now().UTC(),
		Source:      source,
		Collections: *snap,
	}
}
