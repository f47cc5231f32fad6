package khata

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/buyer"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/item"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// ──────────────────────────────────────────────────
// Sales
// ──────────────────────────────────────────────────

// RecordSale applies a fully-formed sale: line items priced at sale
// time, discount and tax already folded into the total. Stock at the
// sale branch is drawn down, clamped at zero, and a wholesale sale tied
// to a buyer increases that buyer's running credit by the unpaid
// balance. Exactly one audit entry is written, plus a critical entry
// when the fraud predicate fires.
func (e *Engine) RecordSale(ctx context.Context, tx *transaction.Transaction) error {
	if tx == nil {
		return ValidationError{Field: "transaction", Message: "must not be nil"}
	}
	if !tx.Branch.IsValid() {
		return ValidationError{Field: "branch", Message: "unknown branch"}
	}
	if tx.TotalAmount.IsNegative() {
		return ValidationError{Field: "total_amount", Message: "must not be negative"}
	}
	tx.PaidAmount = e.normalize(tx.PaidAmount)
	if tx.PaidAmount.IsNegative() {
		return ValidationError{Field: "paid_amount", Message: "must not be negative"}
	}
	if tx.Type != transaction.TypeWholesale && tx.Type != transaction.TypeRetail {
		return ValidationError{Field: "type", Message: "unknown transaction type"}
	}
	tx.Discount = e.normalize(tx.Discount)
	tx.Tax = e.normalize(tx.Tax)
	if err := e.checkCurrency("total_amount", tx.TotalAmount); err != nil {
		return err
	}
	if err := e.checkCurrency("paid_amount", tx.PaidAmount); err != nil {
		return err
	}
	if err := e.checkCurrency("discount", tx.Discount); err != nil {
		return err
	}
	if err := e.checkCurrency("tax", tx.Tax); err != nil {
		return err
	}

	e.mu.Lock()

	// Fail fast before any mutation.
	if tx.IsCreditBearing() {
		if _, ok := e.store.BuyerView(tx.BuyerID); !ok {
			e.mu.Unlock()
			return ErrBuyerNotFound
		}
	}

	if tx.ID.IsNil() {
		tx.ID = id.NewTransactionID()
	}
	tx.Entity = types.NewEntity()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}
	tx.Status = transaction.DeriveStatus(tx.TotalAmount, tx.PaidAmount)

	// Draw down the sale branch's stock pools. Missing items are
	// skipped and shortfalls clamp: the cart validated availability but
	// concurrent carts can still race past it.
	for _, line := range tx.Items {
		e.store.MutateItem(line.ItemID, func(it *item.Item) {
			it.Deduct(tx.Branch, line.Quantity)
			it.Touch()
		})
	}

	var overLimit bool
	if tx.IsCreditBearing() {
		e.store.MutateBuyer(tx.BuyerID, func(b *buyer.Buyer) {
			b.CurrentCredit = b.CurrentCredit.Add(tx.Unpaid())
			b.Touch()
			overLimit = b.OverLimit()
		})
	}

	e.store.PutTransaction(tx)

	actor := actorFrom(ctx)
	e.recorder.Record(actor, audit.Entry{
		Action:   audit.ActionSaleRecorded,
		Target:   fmt.Sprintf("transaction %s", tx.ID),
		NewValue: fmt.Sprintf("%s %s, paid %s", tx.Type, tx.TotalAmount, tx.PaidAmount),
		Severity: audit.SeverityMedium,
	})

	flagged := e.fraudCheck(tx)
	if flagged {
		e.recorder.Record(actor, audit.Entry{
			Action:   audit.ActionSaleFlagged,
			Target:   fmt.Sprintf("transaction %s", tx.ID),
			NewValue: fmt.Sprintf("flagged sale of %s at %s", tx.TotalAmount, tx.Branch),
			Severity: audit.SeverityCritical,
		})
	}

	e.mu.Unlock()

	e.plugins.EmitSaleRecorded(ctx, tx)
	if flagged {
		e.plugins.EmitFraudFlagged(ctx, tx)
	}
	if overLimit {
		if b, ok := e.store.BuyerView(tx.BuyerID); ok {
			e.plugins.EmitCreditLimitExceeded(ctx, &b, b.CurrentCredit.Amount, b.CreditLimit.Amount)
		}
	}

	e.scheduleSync()
	return nil
}

// RecordManualBill charges a buyer outside the POS cart flow: a
// zero-item wholesale transaction, fully unpaid, raising the buyer's
// credit by the bill amount.
func (e *Engine) RecordManualBill(ctx context.Context, buyerID id.BuyerID, amount types.Money, branch types.Branch, remarks string) (*transaction.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}

	if !branch.IsValid() {
		return nil, ValidationError{Field: "branch", Message: "unknown branch"}
	}
	if err := e.checkCurrency("amount", amount); err != nil {
		return nil, err
	}

	tx := &transaction.Transaction{
		Branch:        branch,
		BuyerID:       buyerID,
		Type:          transaction.TypeWholesale,
		Items:         []transaction.SaleItem{},
		TotalAmount:   amount,
		PaidAmount:    types.Zero(amount.Currency),
		Discount:      types.Zero(amount.Currency),
		Tax:           types.Zero(amount.Currency),
		PaymentMethod: types.PaymentCredit,
	}

	e.mu.Lock()

	ok := e.store.MutateBuyer(buyerID, func(b *buyer.Buyer) {
		b.CurrentCredit = b.CurrentCredit.Add(amount)
		b.Touch()
	})
	if !ok {
		e.mu.Unlock()
		return nil, ErrBuyerNotFound
	}

	tx.ID = id.NewTransactionID()
	tx.Entity = types.NewEntity()
	tx.Timestamp = time.Now().UTC()
	tx.Status = transaction.StatusUnpaid
	e.store.PutTransaction(tx)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionBillRecorded,
		Target:   fmt.Sprintf("buyer %s", buyerID),
		NewValue: fmt.Sprintf("manual bill %s (%s)", amount, remarks),
		Severity: audit.SeverityMedium,
	})

	e.mu.Unlock()

	e.plugins.EmitManualBillRecorded(ctx, tx)
	e.scheduleSync()
	return tx, nil
}

// DeleteTransaction removes a transaction and reverses its buyer-credit
// effect, floored at zero. Consumed stock is restored only when the
// engine was configured with WithStockRestoreOnDelete.
func (e *Engine) DeleteTransaction(ctx context.Context, txID id.TransactionID) error {
	e.mu.Lock()

	tx, ok := e.store.TransactionView(txID)
	if !ok {
		e.mu.Unlock()
		return ErrTransactionNotFound
	}

	if tx.IsCreditBearing() {
		e.store.MutateBuyer(tx.BuyerID, func(b *buyer.Buyer) {
			b.CurrentCredit = b.CurrentCredit.Subtract(tx.Unpaid()).FloorZero()
			b.Touch()
		})
	}

	if e.restoreStock {
		for _, line := range tx.Items {
			e.store.MutateItem(line.ItemID, func(it *item.Item) {
				it.Restock(tx.Branch, line.Quantity)
				it.Touch()
			})
		}
	}

	e.store.DeleteTransaction(txID)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionSaleDeleted,
		Target:   fmt.Sprintf("transaction %s", txID),
		OldValue: fmt.Sprintf("%s %s, paid %s", tx.Type, tx.TotalAmount, tx.PaidAmount),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.plugins.EmitTransactionDeleted(ctx, &tx)
	e.scheduleSync()
	return nil
}
