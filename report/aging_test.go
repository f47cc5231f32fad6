package report

import (
	"testing"
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

func unpaidTx(buyerID id.BuyerID, branch types.Branch, total, paid int64, age time.Duration, asOf time.Time) transaction.Transaction {
	return transaction.Transaction{
		ID:          id.NewTransactionID(),
		Branch:      branch,
		BuyerID:     buyerID,
		Type:        transaction.TypeWholesale,
		Timestamp:   asOf.Add(-age),
		TotalAmount: types.LKR(total),
		PaidAmount:  types.LKR(paid),
		Status:      transaction.DeriveStatus(types.LKR(total), types.LKR(paid)),
	}
}

func TestAgingTierBoundaries(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	buyerID := id.NewBuyerID()

	tests := []struct {
		name   string
		age    time.Duration
		bucket string
	}{
		{"Same day", 0, "0-30"},
		{"One hour rounds up to day one", time.Hour, "0-30"},
		{"Exactly 30 days", 30 * 24 * time.Hour, "0-30"},
		{"Just past 30 days", 30*24*time.Hour + time.Minute, "31-60"},
		{"Exactly 60 days", 60 * 24 * time.Hour, "31-60"},
		{"Just past 60 days", 60*24*time.Hour + time.Minute, "61+"},
		{"Ninety days", 90 * 24 * time.Hour, "61+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []transaction.Transaction{
				unpaidTx(buyerID, types.BranchMain, 10000, 0, tt.age, asOf),
			}
			report := ComputeAgingBuckets(txs, buyerID, asOf)

			for _, b := range report.Buckets {
				want := 0
				if b.Label == tt.bucket {
					want = 1
				}
				if b.Count != want {
					t.Errorf("bucket %s: count %d, want %d", b.Label, b.Count, want)
				}
			}
		})
	}
}

func TestAgingSumsUnpaidOnly(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	buyerID := id.NewBuyerID()
	other := id.NewBuyerID()

	txs := []transaction.Transaction{
		unpaidTx(buyerID, types.BranchMain, 20000, 5000, 24*time.Hour, asOf),  // 15000 unpaid, tier 1
		unpaidTx(buyerID, types.Branch1, 10000, 10000, 24*time.Hour, asOf),    // paid, excluded
		unpaidTx(buyerID, types.Branch2, 8000, 0, 45*24*time.Hour, asOf),      // tier 2
		unpaidTx(other, types.BranchMain, 99999, 0, 24*time.Hour, asOf),       // other buyer
		unpaidTx(buyerID, types.Branch3, 5000, 1000, 100*24*time.Hour, asOf),  // 4000, tier 3
	}

	report := ComputeAgingBuckets(txs, buyerID, asOf)

	if !report.Buckets[0].Total.Equal(types.LKR(15000)) {
		t.Errorf("tier 0-30: got %v, want %v", report.Buckets[0].Total, types.LKR(15000))
	}
	if !report.Buckets[1].Total.Equal(types.LKR(8000)) {
		t.Errorf("tier 31-60: got %v, want %v", report.Buckets[1].Total, types.LKR(8000))
	}
	if !report.Buckets[2].Total.Equal(types.LKR(4000)) {
		t.Errorf("tier 61+: got %v, want %v", report.Buckets[2].Total, types.LKR(4000))
	}
	if !report.Total.Equal(types.LKR(27000)) {
		t.Errorf("total: got %v, want %v", report.Total, types.LKR(27000))
	}
}

func TestAgingIdempotent(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	buyerID := id.NewBuyerID()
	txs := []transaction.Transaction{
		unpaidTx(buyerID, types.BranchMain, 20000, 5000, 24*time.Hour, asOf),
		unpaidTx(buyerID, types.Branch2, 8000, 0, 45*24*time.Hour, asOf),
	}

	first := ComputeAgingBuckets(txs, buyerID, asOf)
	second := ComputeAgingBuckets(txs, buyerID, asOf)

	if !first.Total.Equal(second.Total) {
		t.Errorf("totals differ: %v vs %v", first.Total, second.Total)
	}
	for i := range first.Buckets {
		if first.Buckets[i].Count != second.Buckets[i].Count {
			t.Errorf("bucket %s count differs", first.Buckets[i].Label)
		}
		if !first.Buckets[i].Total.Equal(second.Buckets[i].Total) {
			t.Errorf("bucket %s total differs", first.Buckets[i].Label)
		}
	}
}

func TestAgingEmptySet(t *testing.T) {
	report := ComputeAgingBuckets(nil, id.NewBuyerID(), time.Now())

	if len(report.Buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(report.Buckets))
	}
	if !report.Total.IsZero() {
		t.Errorf("expected zero total, got %v", report.Total)
	}
}

func TestBranchExposureOrdering(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	buyerID := id.NewBuyerID()

	txs := []transaction.Transaction{
		unpaidTx(buyerID, types.Branch1, 1500, 0, time.Hour, asOf),
		unpaidTx(buyerID, types.Branch2, 2000, 0, time.Hour, asOf),
		unpaidTx(buyerID, types.Branch2, 1000, 0, time.Hour, asOf),
		unpaidTx(buyerID, types.Branch3, 4000, 4000, time.Hour, asOf), // paid, omitted
	}

	exposure := ComputeBranchExposure(txs, buyerID)

	if len(exposure) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(exposure))
	}
	if exposure[0].Branch != types.Branch2 || !exposure[0].Amount.Equal(types.LKR(3000)) {
		t.Errorf("first: got %s %v, want %s %v", exposure[0].Branch, exposure[0].Amount, types.Branch2, types.LKR(3000))
	}
	if exposure[1].Branch != types.Branch1 || !exposure[1].Amount.Equal(types.LKR(1500)) {
		t.Errorf("second: got %s %v, want %s %v", exposure[1].Branch, exposure[1].Amount, types.Branch1, types.LKR(1500))
	}

	total := TotalExposure(txs, buyerID)
	if !total.Equal(types.LKR(4500)) {
		t.Errorf("total exposure: got %v, want %v", total, types.LKR(4500))
	}
}

func TestBranchExposureTieBreaksByName(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	buyerID := id.NewBuyerID()

	txs := []transaction.Transaction{
		unpaidTx(buyerID, types.Branch2, 1000, 0, time.Hour, asOf),
		unpaidTx(buyerID, types.Branch1, 1000, 0, time.Hour, asOf),
	}

	exposure := ComputeBranchExposure(txs, buyerID)

	if len(exposure) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(exposure))
	}
	if exposure[0].Branch != types.Branch1 {
		t.Errorf("tie break: got %s first, want %s", exposure[0].Branch, types.Branch1)
	}
}
