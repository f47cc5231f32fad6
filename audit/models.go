// Package audit defines the immutable audit trail: one entry per
// balance-affecting mutation, severity-classified, append-only. There is
// no delete operation on audit logs anywhere in the engine.
package audit

import (
	"time"

	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Severity classifies how sensitive a recorded action is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Log is a single immutable audit trail entry.
type Log struct {
	ID        id.AuditLogID  `json:"id"`
	UserID    string         `json:"user_id"`
	UserRole  types.UserRole `json:"user_role"`
	Branch    types.Branch   `json:"branch"`
	Action    string         `json:"action"`
	Target    string         `json:"target"`
	OldValue  string         `json:"old_value,omitempty"`
	NewValue  string         `json:"new_value,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Severity  Severity       `json:"severity"`
}
