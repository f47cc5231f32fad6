// Package memory provides an in-process bridge for tests and ephemeral
// runs. Snapshots survive only as long as the process.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/state"
)

// compile-time interface check
var _ bridge.Bridge = (*Bridge)(nil)

// Bridge stores the latest snapshot in memory, serialized so that the
// round-trip behaves exactly like a real driver.
type Bridge struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// New creates an empty in-memory bridge.
func New() *Bridge {
	return &Bridge{}
}

func (b *Bridge) Load(_ context.Context) (*state.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return &state.Snapshot{}, nil
	}

	var snap state.Snapshot
	if err := json.Unmarshal(b.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (b *Bridge) Save(_ context.Context, snap *state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = data
	b.saves++
	return nil
}

func (b *Bridge) Ping(_ context.Context) error { return nil }

func (b *Bridge) Close() error { return nil }

// Saves returns how many snapshots have been persisted. Test helper.
func (b *Bridge) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.saves
}
