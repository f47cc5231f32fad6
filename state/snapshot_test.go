package state

import (
	"testing"
	"time"

	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/item"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

func seedBuyer(name string) *buyer.Buyer {
	return &buyer.Buyer{
		Entity:        types.NewEntity(),
		ID:            id.NewBuyerID(),
		ShopName:      name,
		CreditLimit:   types.LKR(100000),
		CurrentCredit: types.LKR(5000),
		Payments:      []buyer.Payment{},
	}
}

func TestExportIsDeepCopy(t *testing.T) {
	s := New()
	b := seedBuyer("City Traders")
	s.PutBuyer(b)

	snap := s.Export()
	snap.Buyers[0].CurrentCredit = types.LKR(999999)
	snap.Buyers[0].ShopName = "mutated"

	got, ok := s.BuyerView(b.ID)
	if !ok {
		t.Fatal("buyer missing")
	}
	if got.ShopName != "City Traders" {
		t.Errorf("store mutated through export: %q", got.ShopName)
	}
	if !got.CurrentCredit.Equal(types.LKR(5000)) {
		t.Errorf("store credit mutated through export: %v", got.CurrentCredit)
	}
}

func TestMergeKeepsCollectionsMissingFromSnapshot(t *testing.T) {
	s := New()
	b := seedBuyer("Kept Through Merge")
	s.PutBuyer(b)
	s.PutItem(&item.Item{
		Entity: types.NewEntity(),
		ID:     id.NewItemID(),
		Name:   "Basmati 5kg",
		Stock:  map[types.Branch]int64{types.BranchMain: 10},
	})

	// A snapshot with only transactions set: nil collections mean "no
	// data for that key", not "empty it".
	s.Merge(&Snapshot{
		Transactions: []transaction.Transaction{},
	})

	if _, ok := s.BuyerView(b.ID); !ok {
		t.Error("merge dropped buyers it had no data for")
	}
	if len(s.Items()) != 1 {
		t.Error("merge dropped items it had no data for")
	}
	if len(s.Transactions()) != 0 {
		t.Error("merge kept transactions the snapshot emptied")
	}
}

func TestReplaceEmptiesOmittedCollections(t *testing.T) {
	s := New()
	s.PutBuyer(seedBuyer("Gone After Replace"))
	s.PutItem(&item.Item{
		Entity: types.NewEntity(),
		ID:     id.NewItemID(),
		Name:   "Sugar 1kg",
	})

	kept := seedBuyer("Survivor")
	s.Replace(&Snapshot{
		Buyers: []buyer.Buyer{*kept},
	})

	if len(s.Buyers()) != 1 {
		t.Fatalf("expected 1 buyer, got %d", len(s.Buyers()))
	}
	if len(s.Items()) != 0 {
		t.Errorf("replace kept omitted items: %d", len(s.Items()))
	}
}

func TestMergeBumpsBuyerSequence(t *testing.T) {
	s := New()
	s.Merge(&Snapshot{
		Buyers: []buyer.Buyer{*seedBuyer("A"), *seedBuyer("B"), *seedBuyer("C")},
	})

	if seq := s.NextBuyerSeq(); seq != 4 {
		t.Errorf("next sequence: got %d, want 4", seq)
	}
}

func TestMergeResumesSequencePastDisplayCodeGaps(t *testing.T) {
	// Two survivors of an original run of four: deletions left gaps, so
	// the counter must resume past the highest code, not the count.
	a := seedBuyer("A")
	a.DisplayCode = "OSA-1002"
	b := seedBuyer("B")
	b.DisplayCode = "OSA-1004"

	s := New()
	s.Merge(&Snapshot{Buyers: []buyer.Buyer{*a, *b}})

	if seq := s.NextBuyerSeq(); seq != 5 {
		t.Errorf("next sequence: got %d, want 5", seq)
	}
}

func TestExportMergeRoundTrip(t *testing.T) {
	s := New()
	b := seedBuyer("Round Trip")
	b.Payments = []buyer.Payment{{
		ID:        id.NewPaymentID(),
		BuyerID:   b.ID,
		Amount:    types.LKR(2500),
		Branch:    types.BranchMain,
		Method:    types.PaymentCash,
		Timestamp: time.Now().UTC(),
	}}
	s.PutBuyer(b)

	restored := New()
	restored.Merge(s.Export())

	got, ok := restored.BuyerView(b.ID)
	if !ok {
		t.Fatal("buyer not restored")
	}
	if len(got.Payments) != 1 {
		t.Fatalf("payments not restored: %d", len(got.Payments))
	}
	if !got.Payments[0].Amount.Equal(types.LKR(2500)) {
		t.Errorf("payment amount: got %v", got.Payments[0].Amount)
	}
}
