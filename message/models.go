// Package message defines the outbound WhatsApp reminder log and the
// pure wa.me link builder. No network calls happen here: the engine only
// records that a message link was produced.
package message

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Kind classifies the reminder being sent.
type Kind string

const (
	KindCreditReminder      Kind = "CREDIT_REMINDER"
	KindChequeReminder      Kind = "CHEQUE_REMINDER"
	KindPaymentConfirmation Kind = "PAYMENT_CONFIRMATION"
)

// IsValid returns true if the kind is recognized.
func (k Kind) IsValid() bool {
	switch k {
	case KindCreditReminder, KindChequeReminder, KindPaymentConfirmation:
		return true
	}
	return false
}

// Log is an append-only record of an outbound message link.
type Log struct {
	ID             id.MessageID `json:"id"`
	RecipientName  string       `json:"recipient_name"`
	RecipientPhone string       `json:"recipient_phone"`
	Kind           Kind         `json:"kind"`
	Timestamp      time.Time    `json:"timestamp"`
	Status         string       `json:"status"` // Always "SENT"; links open in the user's client
	Branch         types.Branch `json:"branch"`
}
