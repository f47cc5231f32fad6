// Package seller defines the supplier model and its payable ledger.
// The balance is signed: positive means the business owes the supplier,
// negative means the supplier owes the business (overpayment).
package seller

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// EntryType is the direction of a ledger movement.
type EntryType string

const (
	EntryPurchaseBill EntryType = "PURCHASE_BILL" // Increases balance
	EntryPayment      EntryType = "PAYMENT"       // Decreases balance
)

// Seller is an upstream supplier with a signed payable balance.
type Seller struct {
	types.Entity
	ID             id.SellerID   `json:"id"`
	ShopName       string        `json:"shop_name"`
	ContactName    string        `json:"contact_name"`
	Location       string        `json:"location"`
	Phone          string        `json:"phone"`
	WhatsAppNumber string        `json:"whatsapp_number"`
	Category       string        `json:"category"`
	Balance        types.Money   `json:"balance"` // Signed; negative is a valid overpayment state
	Ledger         []LedgerEntry `json:"ledger"`  // Newest-first
	Remarks        string        `json:"remarks,omitempty"`
}

// LedgerEntry is a single signed movement affecting the supplier balance.
type LedgerEntry struct {
	ID        id.LedgerEntryID    `json:"id"`
	SellerID  id.SellerID         `json:"seller_id"`
	Type      EntryType           `json:"type"`
	Amount    types.Money         `json:"amount"`
	Timestamp time.Time           `json:"timestamp"`
	Branch    types.Branch        `json:"branch"`
	Method    types.PaymentMethod `json:"method,omitempty"`
	Reference string              `json:"reference,omitempty"`
	ImageURL  string              `json:"image_url,omitempty"`
}

// Signed returns the entry amount with the sign it applies to the
// supplier balance: positive for purchase bills, negative for payments.
func (e *LedgerEntry) Signed() types.Money {
	if e.Type == EntryPayment {
		return e.Amount.Negate()
	}

	return e.Amount
}

// EntryByID returns the ledger entry with the given id, or nil.
func (s *Seller) EntryByID(entryID id.LedgerEntryID) *LedgerEntry {
	for i := range s.Ledger {
		if s.Ledger[i].ID == entryID {
			return &s.Ledger[i]
		}
	}

	return nil
}
