package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/state"
	"github.com/xraph/khata/types"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "nope.json"))

	snap, err := b.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap == nil {
		t.Fatal("expected empty snapshot, got nil")
	}
	if snap.Buyers != nil {
		t.Error("expected nil collections on an empty snapshot")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	b := New(path, WithSource("test-suite"))
	ctx := context.Background()

	original := &state.Snapshot{
		Buyers: []buyer.Buyer{{
			Entity:        types.NewEntity(),
			ID:            id.NewBuyerID(),
			ShopName:      "Lanka Stores",
			CreditLimit:   types.LKR(500000),
			CurrentCredit: types.LKR(15000),
			Payments:      []buyer.Payment{},
		}},
	}

	if err := b.Save(ctx, original); err != nil {
		t.Fatal(err)
	}

	restored, err := b.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(restored.Buyers) != 1 {
		t.Fatalf("expected 1 buyer, got %d", len(restored.Buyers))
	}
	if restored.Buyers[0].ShopName != "Lanka Stores" {
		t.Errorf("shop name: got %q", restored.Buyers[0].ShopName)
	}
	if !restored.Buyers[0].CurrentCredit.Equal(types.LKR(15000)) {
		t.Errorf("credit: got %v", restored.Buyers[0].CurrentCredit)
	}
}

func TestSaveWritesVersionedEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	b := New(path, WithSource("test-suite"))

	if err := b.Save(context.Background(), &state.Snapshot{}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc bridge.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Version != bridge.FormatVersion {
		t.Errorf("version: got %q, want %q", doc.Version, bridge.FormatVersion)
	}
	if doc.Source != "test-suite" {
		t.Errorf("source: got %q", doc.Source)
	}
	if doc.Timestamp.IsZero() {
		t.Error("timestamp not stamped")
	}
}

func TestSaveCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "backup.json")
	b := New(path)

	if err := b.Save(context.Background(), &state.Snapshot{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}
