// Package id defines TypeID-based identity types for all Khata entities.
//
// Every entity in Khata uses a single ID struct with a prefix that identifies
// the entity type. IDs are K-sortable (UUIDv7-based), globally unique,
// and URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all Khata entity types.
const (
	PrefixBuyer       Prefix = "byr" // Wholesale credit customer
	PrefixPayment     Prefix = "pay" // Buyer payment
	PrefixTransaction Prefix = "txn" // Sale or manual bill
	PrefixItem        Prefix = "itm" // Inventory item
	PrefixSeller      Prefix = "sel" // Supplier
	PrefixLedgerEntry Prefix = "lgr" // Supplier ledger entry
	PrefixCheque      Prefix = "chq" // Cheque
	PrefixExpense     Prefix = "exp" // Expense record
	PrefixAuditLog    Prefix = "aud" // Audit trail entry
	PrefixMessage     Prefix = "msg" // Outbound message log
)

// ID is the primary identifier type for all Khata entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "byr_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// MustParseWithPrefix is like ParseWithPrefix but panics on error.
func MustParseWithPrefix(s string, expected Prefix) ID {
	parsed, err := ParseWithPrefix(s, expected)
	if err != nil {
		panic(fmt.Sprintf("id: must parse with prefix %q: %v", expected, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Type aliases
// ──────────────────────────────────────────────────

// BuyerID is a type-safe identifier for buyers (prefix: "byr").
type BuyerID = ID

// PaymentID is a type-safe identifier for buyer payments (prefix: "pay").
type PaymentID = ID

// TransactionID is a type-safe identifier for transactions (prefix: "txn").
type TransactionID = ID

// ItemID is a type-safe identifier for inventory items (prefix: "itm").
type ItemID = ID

// SellerID is a type-safe identifier for suppliers (prefix: "sel").
type SellerID = ID

// LedgerEntryID is a type-safe identifier for supplier ledger entries (prefix: "lgr").
type LedgerEntryID = ID

// ChequeID is a type-safe identifier for cheques (prefix: "chq").
type ChequeID = ID

// ExpenseID is a type-safe identifier for expenses (prefix: "exp").
type ExpenseID = ID

// AuditLogID is a type-safe identifier for audit entries (prefix: "aud").
type AuditLogID = ID

// MessageID is a type-safe identifier for message logs (prefix: "msg").
type MessageID = ID

// AnyID is a type alias that accepts any valid prefix.
type AnyID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewBuyerID generates a new unique buyer ID.
func NewBuyerID() ID { return New(PrefixBuyer) }

// NewPaymentID generates a new unique buyer payment ID.
func NewPaymentID() ID { return New(PrefixPayment) }

// NewTransactionID generates a new unique transaction ID.
func NewTransactionID() ID { return New(PrefixTransaction) }

// NewItemID generates a new unique item ID.
func NewItemID() ID { return New(PrefixItem) }

// NewSellerID generates a new unique supplier ID.
func NewSellerID() ID { return New(PrefixSeller) }

// NewLedgerEntryID generates a new unique ledger entry ID.
func NewLedgerEntryID() ID { return New(PrefixLedgerEntry) }

// NewChequeID generates a new unique cheque ID.
func NewChequeID() ID { return New(PrefixCheque) }

// NewExpenseID generates a new unique expense ID.
func NewExpenseID() ID { return New(PrefixExpense) }

// NewAuditLogID generates a new unique audit entry ID.
func NewAuditLogID() ID { return New(PrefixAuditLog) }

// NewMessageID generates a new unique message log ID.
func NewMessageID() ID { return New(PrefixMessage) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseBuyerID parses a string and validates the "byr" prefix.
func ParseBuyerID(s string) (ID, error) { return ParseWithPrefix(s, PrefixBuyer) }

// ParsePaymentID parses a string and validates the "pay" prefix.
func ParsePaymentID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPayment) }

// ParseTransactionID parses a string and validates the "txn" prefix.
func ParseTransactionID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTransaction) }

// ParseItemID parses a string and validates the "itm" prefix.
func ParseItemID(s string) (ID, error) { return ParseWithPrefix(s, PrefixItem) }

// ParseSellerID parses a string and validates the "sel" prefix.
func ParseSellerID(s string) (ID, error) { return ParseWithPrefix(s, PrefixSeller) }

// ParseLedgerEntryID parses a string and validates the "lgr" prefix.
func ParseLedgerEntryID(s string) (ID, error) { return ParseWithPrefix(s, PrefixLedgerEntry) }

// ParseChequeID parses a string and validates the "chq" prefix.
func ParseChequeID(s string) (ID, error) { return ParseWithPrefix(s, PrefixCheque) }

// ParseExpenseID parses a string and validates the "exp" prefix.
func ParseExpenseID(s string) (ID, error) { return ParseWithPrefix(s, PrefixExpense) }

// ParseAuditLogID parses a string and validates the "aud" prefix.
func ParseAuditLogID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAuditLog) }

// ParseMessageID parses a string and validates the "msg" prefix.
func ParseMessageID(s string) (ID, error) { return ParseWithPrefix(s, PrefixMessage) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
