package transaction

import (
	"testing"
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		paid  int64
		want  Status
	}{
		{"Fully paid", 10000, 10000, StatusPaid},
		{"Overpaid still paid", 10000, 12000, StatusPaid},
		{"Nothing paid", 10000, 0, StatusUnpaid},
		{"Partial", 10000, 4000, StatusPartial},
		{"Zero total", 0, 0, StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(types.LKR(tt.total), types.LKR(tt.paid))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAgeDaysRoundsUp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"Future timestamp", -time.Hour, 0},
		{"Zero elapsed", 0, 0},
		{"One second", time.Second, 1},
		{"Half a day", 12 * time.Hour, 1},
		{"Exactly one day", 24 * time.Hour, 1},
		{"A day and a minute", 24*time.Hour + time.Minute, 2},
		{"Thirty days", 30 * 24 * time.Hour, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{Timestamp: now.Add(-tt.elapsed)}
			if got := tx.AgeDays(now); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsCreditBearing(t *testing.T) {
	buyerID := id.NewBuyerID()

	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{"Wholesale with buyer", Transaction{Type: TypeWholesale, BuyerID: buyerID}, true},
		{"Wholesale walk-in", Transaction{Type: TypeWholesale}, false},
		{"Retail with buyer", Transaction{Type: TypeRetail, BuyerID: buyerID}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.IsCreditBearing(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnpaid(t *testing.T) {
	tx := Transaction{
		TotalAmount: types.LKR(20000),
		PaidAmount:  types.LKR(5000),
	}
	if got := tx.Unpaid(); !got.Equal(types.LKR(15000)) {
		t.Errorf("got %v, want %v", got, types.LKR(15000))
	}
}

func TestLineTotal(t *testing.T) {
	si := SaleItem{Quantity: 3, Price: types.LKR(45000)}
	if got := si.LineTotal(); !got.Equal(types.LKR(135000)) {
		t.Errorf("got %v, want %v", got, types.LKR(135000))
	}
}
