package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                  []OnInit
	onShutdown              []OnShutdown
	onSaleRecorded          []OnSaleRecorded
	onManualBillRecorded    []OnManualBillRecorded
	onBuyerPaymentRecorded  []OnBuyerPaymentRecorded
	onTransactionDeleted    []OnTransactionDeleted
	onPaymentDeleted        []OnPaymentDeleted
	onCreditLimitExceeded   []OnCreditLimitExceeded
	onFraudFlagged          []OnFraudFlagged
	onBuyerRegistered       []OnBuyerRegistered
	onBuyerDeleted          []OnBuyerDeleted
	onSupplierEntryRecorded []OnSupplierEntryRecorded
	onSupplierEntryDeleted  []OnSupplierEntryDeleted
	onSupplierDeleted       []OnSupplierDeleted
	onStockTransferred      []OnStockTransferred
	onChequeStatusChanged   []OnChequeStatusChanged
	onExpenseRecorded       []OnExpenseRecorded
	onMessageLogged         []OnMessageLogged
	onSnapshotSynced        []OnSnapshotSynced
	onSyncFailed            []OnSyncFailed
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnSaleRecorded); ok {
		r.onSaleRecorded = append(r.onSaleRecorded, v)
	}
	if v, ok := p.(OnManualBillRecorded); ok {
		r.onManualBillRecorded = append(r.onManualBillRecorded, v)
	}
	if v, ok := p.(OnBuyerPaymentRecorded); ok {
		r.onBuyerPaymentRecorded = append(r.onBuyerPaymentRecorded, v)
	}
	if v, ok := p.(OnTransactionDeleted); ok {
		r.onTransactionDeleted = append(r.onTransactionDeleted, v)
	}
	if v, ok := p.(OnPaymentDeleted); ok {
		r.onPaymentDeleted = append(r.onPaymentDeleted, v)
	}
	if v, ok := p.(OnCreditLimitExceeded); ok {
		r.onCreditLimitExceeded = append(r.onCreditLimitExceeded, v)
	}
	if v, ok := p.(OnFraudFlagged); ok {
		r.onFraudFlagged = append(r.onFraudFlagged, v)
	}
	if v, ok := p.(OnBuyerRegistered); ok {
		r.onBuyerRegistered = append(r.onBuyerRegistered, v)
	}
	if v, ok := p.(OnBuyerDeleted); ok {
		r.onBuyerDeleted = append(r.onBuyerDeleted, v)
	}
	if v, ok := p.(OnSupplierEntryRecorded); ok {
		r.onSupplierEntryRecorded = append(r.onSupplierEntryRecorded, v)
	}
	if v, ok := p.(OnSupplierEntryDeleted); ok {
		r.onSupplierEntryDeleted = append(r.onSupplierEntryDeleted, v)
	}
	if v, ok := p.(OnSupplierDeleted); ok {
		r.onSupplierDeleted = append(r.onSupplierDeleted, v)
	}
	if v, ok := p.(OnStockTransferred); ok {
		r.onStockTransferred = append(r.onStockTransferred, v)
	}
	if v, ok := p.(OnChequeStatusChanged); ok {
		r.onChequeStatusChanged = append(r.onChequeStatusChanged, v)
	}
	if v, ok := p.(OnExpenseRecorded); ok {
		r.onExpenseRecorded = append(r.onExpenseRecorded, v)
	}
	if v, ok := p.(OnMessageLogged); ok {
		r.onMessageLogged = append(r.onMessageLogged, v)
	}
	if v, ok := p.(OnSnapshotSynced); ok {
		r.onSnapshotSynced = append(r.onSnapshotSynced, v)
	}
	if v, ok := p.(OnSyncFailed); ok {
		r.onSyncFailed = append(r.onSyncFailed, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnSaleRecorded)(nil)).Elem(), "OnSaleRecorded")
	checkInterface(reflect.TypeOf((*OnBuyerPaymentRecorded)(nil)).Elem(), "OnBuyerPaymentRecorded")
	checkInterface(reflect.TypeOf((*OnTransactionDeleted)(nil)).Elem(), "OnTransactionDeleted")
	checkInterface(reflect.TypeOf((*OnCreditLimitExceeded)(nil)).Elem(), "OnCreditLimitExceeded")
	checkInterface(reflect.TypeOf((*OnFraudFlagged)(nil)).Elem(), "OnFraudFlagged")
	checkInterface(reflect.TypeOf((*OnSupplierEntryRecorded)(nil)).Elem(), "OnSupplierEntryRecorded")
	checkInterface(reflect.TypeOf((*OnChequeStatusChanged)(nil)).Elem(), "OnChequeStatusChanged")
	checkInterface(reflect.TypeOf((*OnSnapshotSynced)(nil)).Elem(), "OnSnapshotSynced")
	checkInterface(reflect.TypeOf((*OnSyncFailed)(nil)).Elem(), "OnSyncFailed")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSaleRecorded emits a sale recorded event.
func (r *Registry) EmitSaleRecorded(ctx context.Context, tx interface{}) {
	r.mu.RLock()
	plugins := r.onSaleRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSaleRecorded(ctx, tx)
		}); err != nil {
			r.logger.Warn("plugin OnSaleRecorded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitManualBillRecorded emits a manual bill recorded event.
func (r *Registry) EmitManualBillRecorded(ctx context.Context, tx interface{}) {
	r.mu.RLock()
	plugins := r.onManualBillRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnManualBillRecorded(ctx, tx)
		}); err != nil {
			r.logger.Warn("plugin OnManualBillRecorded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitBuyerPaymentRecorded emits a buyer payment recorded event.
func (r *Registry) EmitBuyerPaymentRecorded(ctx context.Context, buyer, payment interface{}) {
	r.mu.RLock()
	plugins := r.onBuyerPaymentRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBuyerPaymentRecorded(ctx, buyer, payment)
		}); err != nil {
			r.logger.Warn("plugin OnBuyerPaymentRecorded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitTransactionDeleted emits a transaction deleted event.
func (r *Registry) EmitTransactionDeleted(ctx context.Context, tx interface{}) {
	r.mu.RLock()
	plugins := r.onTransactionDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransactionDeleted(ctx, tx)
		}); err != nil {
			r.logger.Warn("plugin OnTransactionDeleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPaymentDeleted emits a payment deleted event.
func (r *Registry) EmitPaymentDeleted(ctx context.Context, buyer, payment interface{}) {
	r.mu.RLock()
	plugins := r.onPaymentDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentDeleted(ctx, buyer, payment)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentDeleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCreditLimitExceeded emits a credit limit exceeded event.
func (r *Registry) EmitCreditLimitExceeded(ctx context.Context, buyer interface{}, outstanding, limit int64) {
	r.mu.RLock()
	plugins := r.onCreditLimitExceeded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCreditLimitExceeded(ctx, buyer, outstanding, limit)
		}); err != nil {
			r.logger.Warn("plugin OnCreditLimitExceeded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitFraudFlagged emits a fraud flagged event.
func (r *Registry) EmitFraudFlagged(ctx context.Context, tx interface{}) {
	r.mu.RLock()
	plugins := r.onFraudFlagged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnFraudFlagged(ctx, tx)
		}); err != nil {
			r.logger.Warn("plugin OnFraudFlagged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitBuyerRegistered emits a buyer registered event.
func (r *Registry) EmitBuyerRegistered(ctx context.Context, buyer interface{}) {
	r.mu.RLock()
	plugins := r.onBuyerRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBuyerRegistered(ctx, buyer)
		}); err != nil {
			r.logger.Warn("plugin OnBuyerRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitBuyerDeleted emits a buyer deleted event.
func (r *Registry) EmitBuyerDeleted(ctx context.Context, buyerID string) {
	r.mu.RLock()
	plugins := r.onBuyerDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBuyerDeleted(ctx, buyerID)
		}); err != nil {
			r.logger.Warn("plugin OnBuyerDeleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSupplierEntryRecorded emits a supplier ledger entry recorded event.
func (r *Registry) EmitSupplierEntryRecorded(ctx context.Context, sellerEntity, entry interface{}) {
	r.mu.RLock()
	plugins := r.onSupplierEntryRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSupplierEntryRecorded(ctx, sellerEntity, entry)
		}); err != nil {
			r.logger.Warn("plugin OnSupplierEntryRecorded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSupplierEntryDeleted emits a supplier ledger entry deleted event.
func (r *Registry) EmitSupplierEntryDeleted(ctx context.Context, sellerEntity, entry interface{}) {
	r.mu.RLock()
	plugins := r.onSupplierEntryDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSupplierEntryDeleted(ctx, sellerEntity, entry)
		}); err != nil {
			r.logger.Warn("plugin OnSupplierEntryDeleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSupplierDeleted emits a supplier deleted event.
func (r *Registry) EmitSupplierDeleted(ctx context.Context, sellerID string) {
	r.mu.RLock()
	plugins := r.onSupplierDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSupplierDeleted(ctx, sellerID)
		}); err != nil {
			r.logger.Warn("plugin OnSupplierDeleted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitStockTransferred emits a stock transferred event.
func (r *Registry) EmitStockTransferred(ctx context.Context, itemEntity interface{}, from, to string, qty int64) {
	r.mu.RLock()
	plugins := r.onStockTransferred
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnStockTransferred(ctx, itemEntity, from, to, qty)
		}); err != nil {
			r.logger.Warn("plugin OnStockTransferred failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitChequeStatusChanged emits a cheque status changed event.
func (r *Registry) EmitChequeStatusChanged(ctx context.Context, chequeEntity interface{}, oldStatus, newStatus string) {
	r.mu.RLock()
	plugins := r.onChequeStatusChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnChequeStatusChanged(ctx, chequeEntity, oldStatus, newStatus)
		}); err != nil {
			r.logger.Warn("plugin OnChequeStatusChanged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitExpenseRecorded emits an expense recorded event.
func (r *Registry) EmitExpenseRecorded(ctx context.Context, expenseEntity interface{}) {
	r.mu.RLock()
	plugins := r.onExpenseRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnExpenseRecorded(ctx, expenseEntity)
		}); err != nil {
			r.logger.Warn("plugin OnExpenseRecorded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitMessageLogged emits a message logged event.
func (r *Registry) EmitMessageLogged(ctx context.Context, entry interface{}) {
	r.mu.RLock()
	plugins := r.onMessageLogged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMessageLogged(ctx, entry)
		}); err != nil {
			r.logger.Warn("plugin OnMessageLogged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSnapshotSynced emits a snapshot synced event.
func (r *Registry) EmitSnapshotSynced(ctx context.Context, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onSnapshotSynced
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSnapshotSynced(ctx, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnSnapshotSynced failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSyncFailed emits a sync failed event.
func (r *Registry) EmitSyncFailed(ctx context.Context, syncErr error) {
	r.mu.RLock()
	plugins := r.onSyncFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSyncFailed(ctx, syncErr)
		}); err != nil {
			r.logger.Warn("plugin OnSyncFailed failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
