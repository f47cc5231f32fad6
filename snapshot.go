package khata

import (
	"context"
	"fmt"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/state"
)

// ──────────────────────────────────────────────────
// Snapshots
// ──────────────────────────────────────────────────

// ExportSnapshot returns a deep copy of the full engine state.
func (e *Engine) ExportSnapshot() *state.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Export()
}

// ExportBackup wraps the current state in a versioned backup document
// suitable for writing to a file and importing later.
func (e *Engine) ExportBackup(source string) *bridge.Document {
	return bridge.NewDocument(source, e.ExportSnapshot())
}

// ImportSnapshot replaces the entire engine state with the snapshot.
// Collections missing from the snapshot are emptied, not kept: a restore
// is all-or-nothing. The import itself is the first entry of the fresh
// audit trail.
func (e *Engine) ImportSnapshot(ctx context.Context, snap *state.Snapshot) error {
	if snap == nil {
		return ValidationError{Field: "snapshot", Message: "must not be nil"}
	}

	e.mu.Lock()

	e.store.Replace(snap)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionSnapshotImported,
		Target:   "engine state",
		NewValue: fmt.Sprintf("%d buyers, %d suppliers, %d transactions", len(snap.Buyers), len(snap.Suppliers), len(snap.Transactions)),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// ImportBackup restores state from a backup document. Version skew is
// tolerated: older documents simply leave newer collections empty.
func (e *Engine) ImportBackup(ctx context.Context, doc *bridge.Document) error {
	if doc == nil {
		return ValidationError{Field: "backup", Message: "must not be nil"}
	}

	return e.ImportSnapshot(ctx, &doc.Collections)
}
