// Package plugin provides an extensible plugin system for Khata.
// Plugins can hook into engine lifecycle events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Sale and credit hooks
// ──────────────────────────────────────────────────

// OnSaleRecorded is called after a sale transaction is committed.
type OnSaleRecorded interface {
	Plugin
	OnSaleRecorded(ctx context.Context, tx interface{}) error
}

// OnManualBillRecorded is called after a manual bill is committed.
type OnManualBillRecorded interface {
	Plugin
	OnManualBillRecorded(ctx context.Context, tx interface{}) error
}

// OnBuyerPaymentRecorded is called after a buyer payment settles.
type OnBuyerPaymentRecorded interface {
	Plugin
	OnBuyerPaymentRecorded(ctx context.Context, buyer, payment interface{}) error
}

// OnTransactionDeleted is called after a transaction is removed and its
// credit effect reversed.
type OnTransactionDeleted interface {
	Plugin
	OnTransactionDeleted(ctx context.Context, tx interface{}) error
}

// OnPaymentDeleted is called after a buyer payment is removed and the
// debt reinstated.
type OnPaymentDeleted interface {
	Plugin
	OnPaymentDeleted(ctx context.Context, buyer, payment interface{}) error
}

// OnCreditLimitExceeded is called when a sale pushes a buyer past the
// informational credit limit. The sale has already succeeded.
type OnCreditLimitExceeded interface {
	Plugin
	OnCreditLimitExceeded(ctx context.Context, buyer interface{}, outstanding, limit int64) error
}

// OnFraudFlagged is called when a flagged sale is committed.
type OnFraudFlagged interface {
	Plugin
	OnFraudFlagged(ctx context.Context, tx interface{}) error
}

// ──────────────────────────────────────────────────
// Buyer lifecycle hooks
// ──────────────────────────────────────────────────

// OnBuyerRegistered is called after a new buyer is registered.
type OnBuyerRegistered interface {
	Plugin
	OnBuyerRegistered(ctx context.Context, buyer interface{}) error
}

// OnBuyerDeleted is called after a buyer is removed.
type OnBuyerDeleted interface {
	Plugin
	OnBuyerDeleted(ctx context.Context, buyerID string) error
}

// ──────────────────────────────────────────────────
// Supplier hooks
// ──────────────────────────────────────────────────

// OnSupplierEntryRecorded is called after a purchase bill or supplier
// payment is appended to a ledger.
type OnSupplierEntryRecorded interface {
	Plugin
	OnSupplierEntryRecorded(ctx context.Context, sellerEntity, entry interface{}) error
}

// OnSupplierEntryDeleted is called after a ledger entry is removed and
// its signed effect reversed.
type OnSupplierEntryDeleted interface {
	Plugin
	OnSupplierEntryDeleted(ctx context.Context, sellerEntity, entry interface{}) error
}

// OnSupplierDeleted is called after a supplier is removed.
type OnSupplierDeleted interface {
	Plugin
	OnSupplierDeleted(ctx context.Context, sellerID string) error
}

// ──────────────────────────────────────────────────
// Inventory hooks
// ──────────────────────────────────────────────────

// OnStockTransferred is called after a stock transfer between branches.
type OnStockTransferred interface {
	Plugin
	OnStockTransferred(ctx context.Context, itemEntity interface{}, from, to string, qty int64) error
}

// ──────────────────────────────────────────────────
// Cheque, expense, and messaging hooks
// ──────────────────────────────────────────────────

// OnChequeStatusChanged is called when a cheque reaches a terminal state.
type OnChequeStatusChanged interface {
	Plugin
	OnChequeStatusChanged(ctx context.Context, chequeEntity interface{}, oldStatus, newStatus string) error
}

// OnExpenseRecorded is called after an expense is logged.
type OnExpenseRecorded interface {
	Plugin
	OnExpenseRecorded(ctx context.Context, expenseEntity interface{}) error
}

// OnMessageLogged is called after an outbound message link is recorded.
type OnMessageLogged interface {
	Plugin
	OnMessageLogged(ctx context.Context, entry interface{}) error
}

// ──────────────────────────────────────────────────
// Persistence hooks
// ──────────────────────────────────────────────────

// OnSnapshotSynced is called after the bridge accepts a snapshot save.
type OnSnapshotSynced interface {
	Plugin
	OnSnapshotSynced(ctx context.Context, elapsed time.Duration) error
}

// OnSyncFailed is called when a snapshot save fails and the engine
// degrades to offline-pending. Local state stays authoritative.
type OnSyncFailed interface {
	Plugin
	OnSyncFailed(ctx context.Context, err error) error
}
