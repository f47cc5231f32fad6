// Package buyer defines the wholesale credit customer model and its
// payment history. The running credit balance is mutated only through the
// engine's operations, never directly.
package buyer

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Buyer is a wholesale credit customer with a running outstanding balance
// against an informational credit limit.
type Buyer struct {
	types.Entity
	ID             id.BuyerID  `json:"id"`
	DisplayCode    string      `json:"display_code"` // Sequential shop code, e.g. "OSA-1001"
	ShopName       string      `json:"shop_name"`
	ContactName    string      `json:"contact_name"`
	Location       string      `json:"location"`
	Phone          string      `json:"phone"`
	WhatsAppNumber string      `json:"whatsapp_number"`
	CreditLimit    types.Money `json:"credit_limit"`   // Informational cap, not hard-enforced
	CurrentCredit  types.Money `json:"current_credit"` // Outstanding receivable, never negative
	DueDate        *time.Time  `json:"due_date,omitempty"`
	Payments       []Payment   `json:"payments"` // Newest-first
	Remarks        string      `json:"remarks,omitempty"`
}

// Payment is a single settlement against a buyer's outstanding credit.
// Immutable once recorded; deletion reinstates the debt.
type Payment struct {
	ID           id.PaymentID        `json:"id"`
	BuyerID      id.BuyerID          `json:"buyer_id"`
	Amount       types.Money         `json:"amount"`
	Branch       types.Branch        `json:"branch"`
	Method       types.PaymentMethod `json:"method"`
	Timestamp    time.Time           `json:"timestamp"`
	ReceiptImage string              `json:"receipt_image,omitempty"`
}

// Utilization returns the credit limit usage as a percentage in [0,100+].
// A buyer with no limit reports 0.
func (b *Buyer) Utilization() float64 {
	if b.CreditLimit.Amount <= 0 {
		return 0
	}

	return float64(b.CurrentCredit.Amount) / float64(b.CreditLimit.Amount) * 100
}

// OverLimit returns true when the outstanding balance exceeds the credit
// limit. Informational only; sales against an over-limit buyer still succeed.
func (b *Buyer) OverLimit() bool {
	return b.CreditLimit.IsPositive() && b.CurrentCredit.GreaterThan(b.CreditLimit)
}

// Available returns the remaining headroom under the credit limit,
// floored at zero.
func (b *Buyer) Available() types.Money {
	if b.CreditLimit.Amount <= 0 {
		return types.Zero(b.CurrentCredit.Currency)
	}

	return b.CreditLimit.Subtract(b.CurrentCredit).FloorZero()
}

// PaymentByID returns the payment with the given id, or nil.
func (b *Buyer) PaymentByID(paymentID id.PaymentID) *Payment {
	for i := range b.Payments {
		if b.Payments[i].ID == paymentID {
			return &b.Payments[i]
		}
	}

	return nil
}
