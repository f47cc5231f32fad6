package khata

import (
	"context"
	"fmt"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/cheque"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// ──────────────────────────────────────────────────
// Cheques
// ──────────────────────────────────────────────────

// AddCheque registers a cheque for tracking. New cheques always enter
// as PENDING regardless of the status on the input.
func (e *Engine) AddCheque(ctx context.Context, c *cheque.Cheque) error {
	if c == nil {
		return ValidationError{Field: "cheque", Message: "must not be nil"}
	}
	if !c.Branch.IsValid() {
		return ValidationError{Field: "branch", Message: "unknown branch"}
	}
	if c.ChequeNumber == "" {
		return ValidationError{Field: "cheque_number", Message: "must not be empty"}
	}
	if !c.Amount.IsPositive() {
		return ValidationError{Field: "amount", Message: "must be positive"}
	}
	if err := e.checkCurrency("amount", c.Amount); err != nil {
		return err
	}
	if c.Direction != cheque.Inward && c.Direction != cheque.Outward {
		return ValidationError{Field: "direction", Message: "unknown direction"}
	}

	e.mu.Lock()

	if c.ID.IsNil() {
		c.ID = id.NewChequeID()
	}
	c.Entity = types.NewEntity()
	c.Status = cheque.StatusPending
	e.store.PutCheque(c)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionChequeAdded,
		Target:   fmt.Sprintf("cheque %s", c.ID),
		NewValue: fmt.Sprintf("#%s %s, due %s", c.ChequeNumber, c.Amount, c.DueDate.Format("2006-01-02")),
		Severity: audit.SeverityLow,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// UpdateChequeStatus moves a cheque to CLEARED or BOUNCED. Cheques in a
// terminal state cannot transition again; a bounced cheque stays
// bounced on the record.
func (e *Engine) UpdateChequeStatus(ctx context.Context, chequeID id.ChequeID, target cheque.Status) error {
	if target != cheque.StatusCleared && target != cheque.StatusBounced {
		return ValidationError{Field: "status", Message: "target must be CLEARED or BOUNCED"}
	}

	e.mu.Lock()

	c, ok := e.store.ChequeView(chequeID)
	if !ok {
		e.mu.Unlock()
		return ErrChequeNotFound
	}

	if !c.CanTransitionTo(target) {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, target)
	}

	old := c.Status
	e.store.MutateCheque(chequeID, func(cur *cheque.Cheque) {
		cur.Status = target
		cur.Touch()
	})

	action := audit.ActionChequeCleared
	severity := audit.SeverityMedium
	if target == cheque.StatusBounced {
		action = audit.ActionChequeBounced
		severity = audit.SeverityHigh
	}
	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   action,
		Target:   fmt.Sprintf("cheque %s", chequeID),
		OldValue: string(old),
		NewValue: string(target),
		Severity: severity,
	})

	view, _ := e.store.ChequeView(chequeID)

	e.mu.Unlock()

	e.plugins.EmitChequeStatusChanged(ctx, &view, string(old), string(target))
	e.scheduleSync()
	return nil
}

// DeleteCheque removes a cheque from tracking.
func (e *Engine) DeleteCheque(ctx context.Context, chequeID id.ChequeID) error {
	e.mu.Lock()

	c, ok := e.store.ChequeView(chequeID)
	if !ok {
		e.mu.Unlock()
		return ErrChequeNotFound
	}

	e.store.DeleteCheque(chequeID)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionChequeDeleted,
		Target:   fmt.Sprintf("cheque %s", chequeID),
		OldValue: fmt.Sprintf("#%s %s, %s", c.ChequeNumber, c.Amount, c.Status),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}
