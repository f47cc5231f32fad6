// Package file persists snapshots as the portable JSON backup document:
// a versioned envelope around the eight entity collections. Writes are
// atomic (tmp file + rename) so a crash mid-save never corrupts the
// last good backup.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/state"
)

// compile-time interface check
var _ bridge.Bridge = (*Bridge)(nil)

// Bridge reads and writes the backup document at a fixed path.
type Bridge struct {
	path   string
	source string
}

// Option configures a file Bridge.
type Option func(*Bridge)

// WithSource sets the source label stamped into the backup envelope.
func WithSource(source string) Option {
	return func(b *Bridge) {
		b.source = source
	}
}

// New creates a file bridge writing to path.
func New(path string, opts ...Option) *Bridge {
	b := &Bridge{
		path:   path,
		source: "khata",
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Bridge) Load(_ context.Context) (*state.Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &state.Snapshot{}, nil
		}
		return nil, fmt.Errorf("khata/file: read %s: %w", b.path, err)
	}

	var doc bridge.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("khata/file: decode %s: %w", b.path, err)
	}

	snap := doc.Collections
	return &snap, nil
}

func (b *Bridge) Save(_ context.Context, snap *state.Snapshot) error {
	doc := bridge.NewDocument(b.source, snap)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("khata/file: encode snapshot: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("khata/file: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("khata/file: create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()                //nolint:errcheck,gosec // already failing
		_ = os.Remove(tmp.Name())  //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("khata/file: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("khata/file: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("khata/file: replace %s: %w", b.path, err)
	}

	return nil
}

func (b *Bridge) Ping(_ context.Context) error {
	dir := filepath.Dir(b.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("khata/file: stat %s: %w", dir, err)
	}
	return nil
}

func (b *Bridge) Close() error { return nil }
