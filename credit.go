package khata

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// ──────────────────────────────────────────────────
// Buyer credit
// ──────────────────────────────────────────────────

// RegisterBuyer creates a new buyer with a sequential display code and
// zero opening credit.
func (e *Engine) RegisterBuyer(ctx context.Context, b *buyer.Buyer) error {
	if b == nil {
		return ValidationError{Field: "buyer", Message: "must not be nil"}
	}
	if b.ShopName == "" {
		return ValidationError{Field: "shop_name", Message: "must not be empty"}
	}
	b.CreditLimit = e.normalize(b.CreditLimit)
	if b.CreditLimit.IsNegative() {
		return ValidationError{Field: "credit_limit", Message: "must not be negative"}
	}
	if err := e.checkCurrency("credit_limit", b.CreditLimit); err != nil {
		return err
	}

	e.mu.Lock()

	if b.ID.IsNil() {
		b.ID = id.NewBuyerID()
	}
	b.Entity = types.NewEntity()
	b.DisplayCode = fmt.Sprintf("OSA-%d", 1000+e.store.NextBuyerSeq())
	b.CurrentCredit = e.zero()
	b.Payments = []buyer.Payment{}
	e.store.PutBuyer(b)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionBuyerRegistered,
		Target:   fmt.Sprintf("buyer %s", b.ID),
		NewValue: fmt.Sprintf("%s (%s), limit %s", b.ShopName, b.DisplayCode, b.CreditLimit),
		Severity: audit.SeverityLow,
	})

	e.mu.Unlock()

	e.plugins.EmitBuyerRegistered(ctx, b)
	e.scheduleSync()
	return nil
}

// UpdateBuyer updates a buyer's profile fields. The running credit,
// payment history, and display code are owned by the engine and cannot
// be edited through this path.
func (e *Engine) UpdateBuyer(ctx context.Context, b *buyer.Buyer) error {
	if b == nil {
		return ValidationError{Field: "buyer", Message: "must not be nil"}
	}
	b.CreditLimit = e.normalize(b.CreditLimit)
	if b.CreditLimit.IsNegative() {
		return ValidationError{Field: "credit_limit", Message: "must not be negative"}
	}
	if err := e.checkCurrency("credit_limit", b.CreditLimit); err != nil {
		return err
	}

	e.mu.Lock()

	var old string
	ok := e.store.MutateBuyer(b.ID, func(cur *buyer.Buyer) {
		old = cur.ShopName
		cur.ShopName = b.ShopName
		cur.ContactName = b.ContactName
		cur.Location = b.Location
		cur.Phone = b.Phone
		cur.WhatsAppNumber = b.WhatsAppNumber
		cur.CreditLimit = b.CreditLimit
		cur.DueDate = b.DueDate
		cur.Remarks = b.Remarks
		cur.Touch()
	})
	if !ok {
		e.mu.Unlock()
		return ErrBuyerNotFound
	}

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionBuyerUpdated,
		Target:   fmt.Sprintf("buyer %s", b.ID),
		OldValue: old,
		NewValue: fmt.Sprintf("%s, limit %s", b.ShopName, b.CreditLimit),
		Severity: audit.SeverityMedium,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// RecordBuyerPayment settles part of a buyer's outstanding credit. The
// balance decrement is floored at zero: an overpayment is silently
// absorbed, never a negative receivable.
func (e *Engine) RecordBuyerPayment(ctx context.Context, buyerID id.BuyerID, amount types.Money, branch types.Branch, method types.PaymentMethod) (*buyer.Payment, error) {
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

	payment := buyer.Payment{
		ID:        id.NewPaymentID(),
		BuyerID:   buyerID,
		Amount:    amount,
		Branch:    branch,
		Method:    method,
		Timestamp: time.Now().UTC(),
	}

	var old, current types.Money
	ok := e.store.MutateBuyer(buyerID, func(b *buyer.Buyer) {
		// Newest-first
		b.Payments = append([]buyer.Payment{payment}, b.Payments...)
		old = b.CurrentCredit
		b.CurrentCredit = b.CurrentCredit.Subtract(amount).FloorZero()
		current = b.CurrentCredit
		b.Touch()
	})
	if !ok {
		e.mu.Unlock()
		return nil, ErrBuyerNotFound
	}

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionPaymentRecorded,
		Target:   fmt.Sprintf("buyer %s", buyerID),
		OldValue: old.String(),
		NewValue: current.String(),
		Severity: audit.SeverityMedium,
	})

	view, _ := e.store.BuyerView(buyerID)

	e.mu.Unlock()

	e.plugins.EmitBuyerPaymentRecorded(ctx, &view, &payment)
	e.scheduleSync()
	return &payment, nil
}

// DeleteBuyerPayment removes a recorded payment and reinstates the debt
// it had settled.
func (e *Engine) DeleteBuyerPayment(ctx context.Context, buyerID id.BuyerID, paymentID id.PaymentID) error {
	e.mu.Lock()

	var (
		found        bool
		removed      buyer.Payment
		old, current types.Money
	)
	ok := e.store.MutateBuyer(buyerID, func(b *buyer.Buyer) {
		for i := range b.Payments {
			if b.Payments[i].ID != paymentID {
				continue
			}
			removed = b.Payments[i]
			b.Payments = append(b.Payments[:i], b.Payments[i+1:]...)
			old = b.CurrentCredit
			b.CurrentCredit = b.CurrentCredit.Add(removed.Amount)
			current = b.CurrentCredit
			b.Touch()
			found = true
			return
		}
	})
	if !ok {
		e.mu.Unlock()
		return ErrBuyerNotFound
	}
	if !found {
		e.mu.Unlock()
		return ErrPaymentNotFound
	}

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionPaymentDeleted,
		Target:   fmt.Sprintf("buyer %s", buyerID),
		OldValue: old.String(),
		NewValue: current.String(),
		Severity: audit.SeverityHigh,
	})

	view, _ := e.store.BuyerView(buyerID)

	e.mu.Unlock()

	e.plugins.EmitPaymentDeleted(ctx, &view, &removed)
	e.scheduleSync()
	return nil
}

// DeleteBuyer removes a buyer according to the configured deletion
// policy: Detach leaves transactions orphaned, Cascade removes them
// too, Restrict rejects the delete while references remain.
func (e *Engine) DeleteBuyer(ctx context.Context, buyerID id.BuyerID) error {
	e.mu.Lock()

	b, ok := e.store.BuyerView(buyerID)
	if !ok {
		e.mu.Unlock()
		return ErrBuyerNotFound
	}

	switch e.deletionPolicy {
	case DeletionRestrict:
		if e.store.HasBuyerReferences(buyerID) || len(b.Payments) > 0 {
			e.mu.Unlock()
			return ErrBuyerReferenced
		}
	case DeletionCascade:
		// The buyer's balance dies with the buyer: no credit reversal
		// for the cascaded transactions.
		for _, tx := range e.store.TransactionsByBuyer(buyerID) {
			e.store.DeleteTransaction(tx.ID)
		}
	case DeletionDetach:
		// Orphaned buyer references persist on the transactions.
	}

	e.store.DeleteBuyer(buyerID)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionBuyerDeleted,
		Target:   fmt.Sprintf("buyer %s", buyerID),
		OldValue: fmt.Sprintf("%s (%s), outstanding %s", b.ShopName, b.DisplayCode, b.CurrentCredit),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.plugins.EmitBuyerDeleted(ctx, buyerID.String())
	e.scheduleSync()
	return nil
}
