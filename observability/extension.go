// Package observability provides a metrics extension for Khata that
// records lifecycle event counts via a pluggable MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/khata/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                  = (*MetricsExtension)(nil)
	_ plugin.OnInit                  = (*MetricsExtension)(nil)
	_ plugin.OnSaleRecorded          = (*MetricsExtension)(nil)
	_ plugin.OnManualBillRecorded    = (*MetricsExtension)(nil)
	_ plugin.OnBuyerPaymentRecorded  = (*MetricsExtension)(nil)
	_ plugin.OnTransactionDeleted    = (*MetricsExtension)(nil)
	_ plugin.OnPaymentDeleted        = (*MetricsExtension)(nil)
	_ plugin.OnCreditLimitExceeded   = (*MetricsExtension)(nil)
	_ plugin.OnFraudFlagged          = (*MetricsExtension)(nil)
	_ plugin.OnBuyerRegistered       = (*MetricsExtension)(nil)
	_ plugin.OnBuyerDeleted          = (*MetricsExtension)(nil)
	_ plugin.OnSupplierEntryRecorded = (*MetricsExtension)(nil)
	_ plugin.OnSupplierEntryDeleted  = (*MetricsExtension)(nil)
	_ plugin.OnStockTransferred      = (*MetricsExtension)(nil)
	_ plugin.OnChequeStatusChanged   = (*MetricsExtension)(nil)
	_ plugin.OnExpenseRecorded       = (*MetricsExtension)(nil)
	_ plugin.OnMessageLogged         = (*MetricsExtension)(nil)
	_ plugin.OnSnapshotSynced        = (*MetricsExtension)(nil)
	_ plugin.OnSyncFailed            = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Khata plugin to automatically track ledger metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Sale metrics
	SalesRecorded       Counter
	ManualBills         Counter
	SalesDeleted        Counter
	SalesFlagged        Counter
	CreditLimitBreaches Counter

	// Buyer metrics
	BuyersRegistered Counter
	BuyersDeleted    Counter
	PaymentsRecorded Counter
	PaymentsDeleted  Counter

	// Supplier metrics
	SupplierEntries        Counter
	SupplierEntriesDeleted Counter

	// Inventory metrics
	StockTransfers    Counter
	StockTransferSize Histogram

	// Cheque metrics
	ChequesCleared Counter
	ChequesBounced Counter

	// Expense and messaging metrics
	ExpensesRecorded Counter
	MessagesLogged   Counter

	// Sync metrics
	SyncSuccess Counter
	SyncFailure Counter
	SyncLatency Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided
// MetricFactory. Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Sale metrics
		SalesRecorded:       factory.Counter("khata.sale.recorded"),
		ManualBills:         factory.Counter("khata.sale.manual_bill"),
		SalesDeleted:        factory.Counter("khata.sale.deleted"),
		SalesFlagged:        factory.Counter("khata.sale.flagged"),
		CreditLimitBreaches: factory.Counter("khata.credit.limit_exceeded"),

		// Buyer metrics
		BuyersRegistered: factory.Counter("khata.buyer.registered"),
		BuyersDeleted:    factory.Counter("khata.buyer.deleted"),
		PaymentsRecorded: factory.Counter("khata.payment.recorded"),
		PaymentsDeleted:  factory.Counter("khata.payment.deleted"),

		// Supplier metrics
		SupplierEntries:        factory.Counter("khata.supplier.entry.recorded"),
		SupplierEntriesDeleted: factory.Counter("khata.supplier.entry.deleted"),

		// Inventory metrics
		StockTransfers:    factory.Counter("khata.stock.transfers"),
		StockTransferSize: factory.Histogram("khata.stock.transfer.quantity"),

		// Cheque metrics
		ChequesCleared: factory.Counter("khata.cheque.cleared"),
		ChequesBounced: factory.Counter("khata.cheque.bounced"),

		// Expense and messaging metrics
		ExpensesRecorded: factory.Counter("khata.expense.recorded"),
		MessagesLogged:   factory.Counter("khata.message.logged"),

		// Sync metrics
		SyncSuccess: factory.Counter("khata.sync.success"),
		SyncFailure: factory.Counter("khata.sync.failure"),
		SyncLatency: factory.Histogram("khata.sync.latency_ms"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Sale and credit hooks
// ──────────────────────────────────────────────────

// OnSaleRecorded implements plugin.OnSaleRecorded.
func (m *MetricsExtension) OnSaleRecorded(_ context.Context, _ interface{}) error {
	m.SalesRecorded.Inc()
	return nil
}

// OnManualBillRecorded implements plugin.OnManualBillRecorded.
func (m *MetricsExtension) OnManualBillRecorded(_ context.Context, _ interface{}) error {
	m.ManualBills.Inc()
	return nil
}

// OnBuyerPaymentRecorded implements plugin.OnBuyerPaymentRecorded.
func (m *MetricsExtension) OnBuyerPaymentRecorded(_ context.Context, _, _ interface{}) error {
	m.PaymentsRecorded.Inc()
	return nil
}

// OnTransactionDeleted implements plugin.OnTransactionDeleted.
func (m *MetricsExtension) OnTransactionDeleted(_ context.Context, _ interface{}) error {
	m.SalesDeleted.Inc()
	return nil
}

// OnPaymentDeleted implements plugin.OnPaymentDeleted.
func (m *MetricsExtension) OnPaymentDeleted(_ context.Context, _, _ interface{}) error {
	m.PaymentsDeleted.Inc()
	return nil
}

// OnCreditLimitExceeded implements plugin.OnCreditLimitExceeded.
func (m *MetricsExtension) OnCreditLimitExceeded(_ context.Context, _ interface{}, _, _ int64) error {
	m.CreditLimitBreaches.Inc()
	return nil
}

// OnFraudFlagged implements plugin.OnFraudFlagged.
func (m *MetricsExtension) OnFraudFlagged(_ context.Context, _ interface{}) error {
	m.SalesFlagged.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Buyer lifecycle hooks
// ──────────────────────────────────────────────────

// OnBuyerRegistered implements plugin.OnBuyerRegistered.
func (m *MetricsExtension) OnBuyerRegistered(_ context.Context, _ interface{}) error {
	m.BuyersRegistered.Inc()
	return nil
}

// OnBuyerDeleted implements plugin.OnBuyerDeleted.
func (m *MetricsExtension) OnBuyerDeleted(_ context.Context, _ string) error {
	m.BuyersDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Supplier hooks
// ──────────────────────────────────────────────────

// OnSupplierEntryRecorded implements plugin.OnSupplierEntryRecorded.
func (m *MetricsExtension) OnSupplierEntryRecorded(_ context.Context, _, _ interface{}) error {
	m.SupplierEntries.Inc()
	return nil
}

// OnSupplierEntryDeleted implements plugin.OnSupplierEntryDeleted.
func (m *MetricsExtension) OnSupplierEntryDeleted(_ context.Context, _, _ interface{}) error {
	m.SupplierEntriesDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Inventory hooks
// ──────────────────────────────────────────────────

// OnStockTransferred implements plugin.OnStockTransferred.
func (m *MetricsExtension) OnStockTransferred(_ context.Context, _ interface{}, _, _ string, qty int64) error {
	m.StockTransfers.Inc()
	m.StockTransferSize.Observe(float64(qty))
	return nil
}

// ──────────────────────────────────────────────────
// Cheque, expense, and messaging hooks
// ──────────────────────────────────────────────────

// OnChequeStatusChanged implements plugin.OnChequeStatusChanged.
func (m *MetricsExtension) OnChequeStatusChanged(_ context.Context, _ interface{}, _, newStatus string) error {
	if newStatus == "BOUNCED" {
		m.ChequesBounced.Inc()
	} else {
		m.ChequesCleared.Inc()
	}
	return nil
}

// OnExpenseRecorded implements plugin.OnExpenseRecorded.
func (m *MetricsExtension) OnExpenseRecorded(_ context.Context, _ interface{}) error {
	m.ExpensesRecorded.Inc()
	return nil
}

// OnMessageLogged implements plugin.OnMessageLogged.
func (m *MetricsExtension) OnMessageLogged(_ context.Context, _ interface{}) error {
	m.MessagesLogged.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Persistence hooks
// ──────────────────────────────────────────────────

// OnSnapshotSynced implements plugin.OnSnapshotSynced.
func (m *MetricsExtension) OnSnapshotSynced(_ context.Context, elapsed time.Duration) error {
	m.SyncSuccess.Inc()
	m.SyncLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// OnSyncFailed implements plugin.OnSyncFailed.
func (m *MetricsExtension) OnSyncFailed(_ context.Context, _ error) error {
	m.SyncFailure.Inc()
	return nil
}
