// Package cheque defines tracked cheques and their terminal state machine.
package cheque

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Status is the clearing state of a cheque. PENDING may move to CLEARED
// or BOUNCED; both are terminal.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusCleared Status = "CLEARED"
	StatusBounced Status = "BOUNCED"
)

// Direction distinguishes cheques received from cheques issued.
type Direction string

const (
	Inward  Direction = "INWARD"  // Received from a buyer
	Outward Direction = "OUTWARD" // Issued to a supplier
)

// Cheque is a tracked inward or outward cheque.
type Cheque struct {
	types.Entity
	ID           id.ChequeID  `json:"id"`
	Branch       types.Branch `json:"branch"`
	ChequeNumber string       `json:"cheque_number"`
	Bank         string       `json:"bank"`
	Amount       types.Money  `json:"amount"`
	DueDate      time.Time    `json:"due_date"`
	Status       Status       `json:"status"`
	Direction    Direction    `json:"direction"`
	ReferenceID  id.ID        `json:"reference_id,omitempty"` // Linked buyer or supplier
	Remarks      string       `json:"remarks,omitempty"`
}

// CanTransitionTo reports whether the cheque may move to the target
// status. Only PENDING cheques can transition, and only to a terminal
// state.
func (c *Cheque) CanTransitionTo(target Status) bool {
	if c.Status != StatusPending {
		return false
	}

	return target == StatusCleared || target == StatusBounced
}

// IsTerminal returns true once the cheque has cleared or bounced.
func (c *Cheque) IsTerminal() bool {
	return c.Status == StatusCleared || c.Status == StatusBounced
}

// IsOverdue returns true for a pending cheque past its due date.
func (c *Cheque) IsOverdue(asOf time.Time) bool {
	return c.Status == StatusPending && asOf.After(c.DueDate)
}
