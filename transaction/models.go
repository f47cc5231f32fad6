// Package transaction defines sales and manual bills. A transaction is
// immutable once recorded; the only lifecycle event after creation is
// deletion, which reverses its buyer-credit effect.
package transaction

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Type distinguishes wholesale (credit-bearing) from retail sales.
type Type string

const (
	TypeWholesale Type = "WHOLESALE"
	TypeRetail    Type = "RETAIL"
)

// Status is derived from the paid/total relationship, never set directly.
type Status string

const (
	StatusPaid    Status = "PAID"
	StatusPartial Status = "PARTIAL"
	StatusUnpaid  Status = "UNPAID"
)

// Transaction is a POS sale or a manual bill. Line item prices are
// snapshotted at sale time, not re-derived from current item prices.
type Transaction struct {
	types.Entity
	ID            id.TransactionID    `json:"id"`
	Branch        types.Branch        `json:"branch"`
	Timestamp     time.Time           `json:"timestamp"`
	BuyerID       id.BuyerID          `json:"buyer_id,omitempty"` // Nil for walk-in retail
	Type          Type                `json:"type"`
	Items         []SaleItem          `json:"items"` // Empty for manual bills
	TotalAmount   types.Money         `json:"total_amount"`
	PaidAmount    types.Money         `json:"paid_amount"`
	Discount      types.Money         `json:"discount"`
	Tax           types.Money         `json:"tax"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
	BillImageURL  string              `json:"bill_image_url,omitempty"`
	Status        Status              `json:"status"`
	IsFlagged     bool                `json:"is_flagged,omitempty"` // Fraud heuristic set by the caller
}

// SaleItem is one line of a transaction with the unit price frozen at
// sale time.
type SaleItem struct {
	ID       id.ID       `json:"id"`
	SaleID   id.ID       `json:"sale_id"`
	ItemID   id.ItemID   `json:"item_id"`
	Quantity int64       `json:"quantity"`
	Price    types.Money `json:"price"` // Unit price at time of sale
}

// LineTotal returns quantity times the frozen unit price.
func (si SaleItem) LineTotal() types.Money {
	return si.Price.Multiply(si.Quantity)
}

// DeriveStatus computes the payment status from total and paid amounts.
func DeriveStatus(total, paid types.Money) Status {
	switch {
	case paid.Amount >= total.Amount:
		return StatusPaid
	case paid.Amount > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// Unpaid returns the outstanding balance of the transaction,
// total minus paid.
func (t *Transaction) Unpaid() types.Money {
	return t.TotalAmount.Subtract(t.PaidAmount)
}

// IsCreditBearing returns true when the transaction affects a buyer's
// running credit: a wholesale sale or manual bill tied to a buyer.
func (t *Transaction) IsCreditBearing() bool {
	return !t.BuyerID.IsNil() && t.Type == TypeWholesale
}

// IsManualBill returns true for zero-item wholesale charges entered
// outside the POS cart flow.
func (t *Transaction) IsManualBill() bool {
	return len(t.Items) == 0 && t.Type == TypeWholesale
}

// AgeDays returns the whole-day age of the transaction as of the given
// instant, rounded up. A transaction recorded an hour ago is 1 day old.
func (t *Transaction) AgeDays(asOf time.Time) int {
	elapsed := asOf.Sub(t.Timestamp)
	if elapsed <= 0 {
		return 0
	}

	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}

	return days
}
