package khata

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/expense"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/message"
)

// ──────────────────────────────────────────────────
// Expenses
// ──────────────────────────────────────────────────

// AddExpense records an operating expense against a branch.
func (e *Engine) AddExpense(ctx context.Context, ex *expense.Expense) error {
	if ex == nil {
		return ValidationError{Field: "expense", Message: "must not be nil"}
	}
	if !ex.Branch.IsValid() {
		return ValidationError{Field: "branch", Message: "unknown branch"}
	}
	if !ex.Amount.IsPositive() {
		return ValidationError{Field: "amount", Message: "must be positive"}
	}
	if err := e.checkCurrency("amount", ex.Amount); err != nil {
		return err
	}
	if ex.Description == "" {
		return ValidationError{Field: "description", Message: "must not be empty"}
	}

	e.mu.Lock()

	if ex.ID.IsNil() {
		ex.ID = id.NewExpenseID()
	}
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now().UTC()
	}
	e.store.PutExpense(ex)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionExpenseRecorded,
		Target:   fmt.Sprintf("expense %s", ex.ID),
		NewValue: fmt.Sprintf("%s: %s at %s", ex.Description, ex.Amount, ex.Branch),
		Severity: audit.SeverityLow,
	})

	e.mu.Unlock()

	e.plugins.EmitExpenseRecorded(ctx, ex)
	e.scheduleSync()
	return nil
}

// DeleteExpense removes a recorded expense.
func (e *Engine) DeleteExpense(ctx context.Context, expenseID id.ExpenseID) error {
	e.mu.Lock()

	ex, ok := e.store.ExpenseView(expenseID)
	if !ok {
		e.mu.Unlock()
		return ErrExpenseNotFound
	}

	e.store.DeleteExpense(expenseID)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionExpenseDeleted,
		Target:   fmt.Sprintf("expense %s", expenseID),
		OldValue: fmt.Sprintf("%s: %s at %s", ex.Description, ex.Amount, ex.Branch),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// ──────────────────────────────────────────────────
// Message log
// ──────────────────────────────────────────────────

// LogMessage records an outbound reminder or confirmation message.
// Messages are append-only; the engine tracks that they were sent, not
// whether they were delivered.
func (e *Engine) LogMessage(ctx context.Context, entry *message.Log) error {
	if entry == nil {
		return ValidationError{Field: "message", Message: "must not be nil"}
	}
	if entry.RecipientPhone == "" {
		return ValidationError{Field: "recipient_phone", Message: "must not be empty"}
	}
	if !entry.Kind.IsValid() {
		return ValidationError{Field: "kind", Message: "unknown message kind"}
	}

	e.mu.Lock()

	if entry.ID.IsNil() {
		entry.ID = id.NewMessageID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	e.store.AppendMessage(*entry)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionMessageLogged,
		Target:   fmt.Sprintf("message %s", entry.ID),
		NewValue: fmt.Sprintf("%s to %s", entry.Kind, entry.RecipientName),
		Severity: audit.SeverityLow,
	})

	e.mu.Unlock()

	e.plugins.EmitMessageLogged(ctx, entry)
	e.scheduleSync()
	return nil
}
