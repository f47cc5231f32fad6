package khata

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/seller"
	"github.com/xraph/khata/types"
)

// ──────────────────────────────────────────────────
// Supplier ledgers
// ──────────────────────────────────────────────────

// RegisterSupplier creates a new supplier with an empty ledger and a
// zero opening balance.
func (e *Engine) RegisterSupplier(ctx context.Context, s *seller.Seller) error {
	if s == nil {
		return ValidationError{Field: "supplier", Message: "must not be nil"}
	}
	if s.ShopName == "" {
		return ValidationError{Field: "shop_name", Message: "must not be empty"}
	}

	e.mu.Lock()

	if s.ID.IsNil() {
		s.ID = id.NewSellerID()
	}
	s.Entity = types.NewEntity()
	s.Balance = e.zero()
	s.Ledger = []seller.LedgerEntry{}
	e.store.PutSeller(s)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionSupplierRegistered,
		Target:   fmt.Sprintf("supplier %s", s.ID),
		NewValue: s.ShopName,
		Severity: audit.SeverityLow,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// UpdateSupplier updates a supplier's profile fields. The balance and
// ledger are derived from recorded entries and cannot be edited here.
func (e *Engine) UpdateSupplier(ctx context.Context, s *seller.Seller) error {
	if s == nil {
		return ValidationError{Field: "supplier", Message: "must not be nil"}
	}

	e.mu.Lock()

	var old string
	ok := e.store.MutateSeller(s.ID, func(cur *seller.Seller) {
		old = cur.ShopName
		cur.ShopName = s.ShopName
		cur.ContactName = s.ContactName
		cur.Location = s.Location
		cur.Phone = s.Phone
		cur.WhatsAppNumber = s.WhatsAppNumber
		cur.Category = s.Category
		cur.Remarks = s.Remarks
		cur.Touch()
	})
	if !ok {
		e.mu.Unlock()
		return ErrSellerNotFound
	}

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionSupplierUpdated,
		Target:   fmt.Sprintf("supplier %s", s.ID),
		OldValue: old,
		NewValue: s.ShopName,
		Severity: audit.SeverityMedium,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// RecordSupplierPurchase records a purchase bill against a supplier,
// increasing the amount owed to them.
func (e *Engine) RecordSupplierPurchase(ctx context.Context, sellerID id.SellerID, amount types.Money, branch types.Branch, reference string) (*seller.LedgerEntry, error) {
	return e.recordSupplierEntry(ctx, sellerID, seller.EntryPurchaseBill, amount, branch, types.PaymentCredit, reference)
}

// RecordSupplierPayment records a payment made to a supplier, reducing
// the amount owed. The balance is signed and deliberately unclamped: an
// overpayment leaves a negative balance, meaning the supplier owes us.
func (e *Engine) RecordSupplierPayment(ctx context.Context, sellerID id.SellerID, amount types.Money, branch types.Branch, method types.PaymentMethod) (*seller.LedgerEntry, error) {
	return e.recordSupplierEntry(ctx, sellerID, seller.EntryPayment, amount, branch, method, "")
}

func (e *Engine) recordSupplierEntry(ctx context.Context, sellerID id.SellerID, kind seller.EntryType, amount types.Money, branch types.Branch, method types.PaymentMethod, reference string) (*seller.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}
	if !branch.IsValid() {
		return nil, ValidationError{Field: "branch", Message: "unknown branch"}
	}
	if !method.IsValid() {
		return nil, ValidationError{Field: "method", Message: "unknown payment method"}
	}
	if err := e.checkCurrency("amount", amount); err != nil {
		return nil, err
	}

	e.mu.Lock()

	entry := seller.LedgerEntry{
		ID:        id.NewLedgerEntryID(),
		SellerID:  sellerID,
		Type:      kind,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
		Branch:    branch,
		Method:    method,
		Reference: reference,
	}

	var old, balance types.Money
	ok := e.store.MutateSeller(sellerID, func(s *seller.Seller) {
		s.Ledger = append([]seller.LedgerEntry{entry}, s.Ledger...)
		old = s.Balance
		s.Balance = s.Balance.Add(entry.Signed())
		balance = s.Balance
		s.Touch()
	})
	if !ok {
		e.mu.Unlock()
		return nil, ErrSellerNotFound
	}

	action := audit.ActionPurchaseBillRecorded
	if kind == seller.EntryPayment {
		action = audit.ActionSupplierPaid
	}
	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   action,
		Target:   fmt.Sprintf("supplier %s", sellerID),
		OldValue: old.String(),
		NewValue: balance.String(),
		Severity: audit.SeverityMedium,
	})

	view, _ := e.store.SellerView(sellerID)

	e.mu.Unlock()

	e.plugins.EmitSupplierEntryRecorded(ctx, &view, &entry)
	e.scheduleSync()
	return &entry, nil
}

// DeleteSupplierLedgerEntry removes a ledger entry and reverses its
// signed effect on the running balance.
func (e *Engine) DeleteSupplierLedgerEntry(ctx context.Context, sellerID id.SellerID, entryID id.LedgerEntryID) error {
	e.mu.Lock()

	var (
		found        bool
		removed      seller.LedgerEntry
		old, balance types.Money
	)
	ok := e.store.MutateSeller(sellerID, func(s *seller.Seller) {
		for i := range s.Ledger {
			if s.Ledger[i].ID != entryID {
				continue
			}
			removed = s.Ledger[i]
			s.Ledger = append(s.Ledger[:i], s.Ledger[i+1:]...)
			old = s.Balance
			s.Balance = s.Balance.Subtract(removed.Signed())
			balance = s.Balance
			s.Touch()
			found = true
			return
		}
	})
	if !ok {
		e.mu.Unlock()
		return ErrSellerNotFound
	}
	if !found {
		e.mu.Unlock()
		return ErrLedgerEntryNotFound
	}

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionLedgerEntryDeleted,
		Target:   fmt.Sprintf("supplier %s", sellerID),
		OldValue: old.String(),
		NewValue: balance.String(),
		Severity: audit.SeverityHigh,
	})

	view, _ := e.store.SellerView(sellerID)

	e.mu.Unlock()

	e.plugins.EmitSupplierEntryDeleted(ctx, &view, &removed)
	e.scheduleSync()
	return nil
}

// DeleteSupplier removes a supplier and their ledger outright. Ledger
// entries live on the supplier record, so nothing else references them.
func (e *Engine) DeleteSupplier(ctx context.Context, sellerID id.SellerID) error {
	e.mu.Lock()

	s, ok := e.store.SellerView(sellerID)
	if !ok {
		e.mu.Unlock()
		return ErrSellerNotFound
	}

	e.store.DeleteSeller(sellerID)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionSupplierDeleted,
		Target:   fmt.Sprintf("supplier %s", sellerID),
		OldValue: fmt.Sprintf("%s, balance %s", s.ShopName, s.Balance),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.plugins.EmitSupplierDeleted(ctx, sellerID.String())
	e.scheduleSync()
	return nil
}
