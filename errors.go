package khata

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("khata: not found")
	ErrInvalidInput = errors.New("khata: invalid input")

	// Buyer errors
	ErrBuyerNotFound   = errors.New("khata: buyer not found")
	ErrPaymentNotFound = errors.New("khata: payment not found")
	ErrBuyerReferenced = errors.New("khata: buyer has transactions or payments")

	// Transaction errors
	ErrTransactionNotFound = errors.New("khata: transaction not found")

	// Supplier errors
	ErrSellerNotFound      = errors.New("khata: supplier not found")
	ErrLedgerEntryNotFound = errors.New("khata: ledger entry not found")

	// Inventory errors
	ErrItemNotFound      = errors.New("khata: item not found")
	ErrInsufficientStock = errors.New("khata: insufficient stock")
	ErrSameBranch        = errors.New("khata: source and target branch are the same")

	// Cheque errors
	ErrChequeNotFound    = errors.New("khata: cheque not found")
	ErrInvalidTransition = errors.New("khata: cheque status transition not allowed")

	// Expense errors
	ErrExpenseNotFound = errors.New("khata: expense not found")

	// Persistence errors
	ErrPersistenceUnavailable = errors.New("khata: persistence bridge unavailable")
	ErrEngineStopped          = errors.New("khata: engine is stopped")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("khata: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrBuyerNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrSellerNotFound) ||
		errors.Is(err, ErrLedgerEntryNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrChequeNotFound) ||
		errors.Is(err, ErrExpenseNotFound)
}

// IsValidation returns true if the error is a validation failure.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidInput)
}

// IsInvalidTransition returns true for rejected cheque state changes.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsStockError returns true if the error is related to inventory pools.
func IsStockError(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrSameBranch)
}
