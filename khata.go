package khata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/plugin"
	"github.com/xraph/khata/state"
	"github.com/xraph/khata/transaction"
	"github.com/xraph/khata/types"
)

// DeletionPolicy controls what happens to a buyer's transactions and
// payments when the buyer record is deleted.
type DeletionPolicy int

const (
	// DeletionDetach removes the buyer only; transactions keep their
	// now-orphaned buyer reference. This is the default.
	DeletionDetach DeletionPolicy = iota

	// DeletionCascade also removes the buyer's transactions. No credit
	// reversal happens: the balance dies with the buyer.
	DeletionCascade

	// DeletionRestrict rejects the delete while any transaction or
	// payment still references the buyer.
	DeletionRestrict
)

// FraudPredicate decides whether a sale warrants a critical-severity
// audit entry. The heuristic itself is computed by the caller; the
// default predicate just reads the flag it set.
type FraudPredicate func(tx *transaction.Transaction) bool

// Engine is the credit and ledger consistency engine. Every mutation
// goes through one of its operations; the entity store is never touched
// directly. Mutations are serialized, audited, and followed by a
// debounced best-effort snapshot save.
type Engine struct {
	store    *state.Store
	bridge   bridge.Bridge
	recorder *audit.Recorder
	plugins  *plugin.Registry
	logger   *slog.Logger

	// mu serializes mutating operations so every balance
	// read-modify-write is atomic with its audit entry.
	mu sync.Mutex

	// Background sync worker
	kick     chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error

	statusMu sync.RWMutex
	status   types.SyncStatus

	// Configuration
	currency       string
	syncDebounce   time.Duration
	deletionPolicy DeletionPolicy
	restoreStock   bool
	fraudCheck     FraudPredicate
}

// New creates a new Engine persisting through b. A nil bridge disables
// persistence entirely; the engine then stays SYNCED and fully in-memory.
func New(b bridge.Bridge, opts ...Option) *Engine {
	e := &Engine{
		store:          state.New(),
		bridge:         b,
		plugins:        plugin.NewRegistry(),
		logger:         slog.Default(),
		kick:           make(chan struct{}, 1),
		stopChan:       make(chan struct{}),
		status:         types.SyncSynced,
		currency:       "lkr",
		syncDebounce:   time.Second,
		deletionPolicy: DeletionDetach,
		fraudCheck:     func(tx *transaction.Transaction) bool { return tx.IsFlagged },
	}

	for _, opt := range opts {
		opt(e)
	}

	e.recorder = audit.NewRecorder(e.store.AppendAuditLog, audit.WithLogger(e.logger))

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithCurrency sets the ledger currency for zero values and display
// codes. Defaults to "lkr".
func WithCurrency(currency string) Option {
	return func(e *Engine) {
		e.currency = strings.ToLower(currency)
	}
}

// WithSyncDebounce sets how long the engine waits after the last
// mutation before persisting a snapshot. Defaults to one second.
func WithSyncDebounce(d time.Duration) Option {
	return func(e *Engine) {
		e.syncDebounce = d
	}
}

// WithDeletionPolicy sets the buyer/supplier deletion policy.
func WithDeletionPolicy(p DeletionPolicy) Option {
	return func(e *Engine) {
		e.deletionPolicy = p
	}
}

// WithStockRestoreOnDelete makes DeleteTransaction put consumed stock
// back into the sale branch's pool. Off by default: deleting a
// historical sale is an accounting correction, not a logistics reversal.
func WithStockRestoreOnDelete(restore bool) Option {
	return func(e *Engine) {
		e.restoreStock = restore
	}
}

// WithFraudPredicate swaps the predicate that escalates a sale to a
// critical-severity audit entry.
func WithFraudPredicate(fn FraudPredicate) Option {
	return func(e *Engine) {
		if fn != nil {
			e.fraudCheck = fn
		}
	}
}

// Start loads the last persisted snapshot, initializes plugins, and
// starts the background sync worker. A bridge load failure is degraded
// to OFFLINE_PENDING, never returned: local state stays authoritative.
func (e *Engine) Start(ctx context.Context) error {
	if e.bridge != nil {
		snap, err := e.bridge.Load(ctx)
		if err != nil {
			e.logger.Warn("snapshot load failed, starting from local state", "error", err)
			e.setStatus(types.SyncOfflinePending)
		} else {
			e.store.Merge(snap)
		}

		e.wg.Add(1)
		go e.syncWorker()
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("khata engine started",
		"currency", e.currency,
		"sync_debounce", e.syncDebounce,
		"deletion_policy", e.deletionPolicy,
		"plugins", e.plugins.Count(),
	)

	return nil
}

// Stop flushes any pending snapshot, shuts down plugins, and closes the
// bridge. Safe to call more than once; later calls return the first
// call's result.
func (e *Engine) Stop() error {
	e.stopOnce.Do(func() {
		close(e.stopChan)
		e.wg.Wait()

		ctx := context.Background()
		e.plugins.EmitShutdown(ctx)

		if e.bridge != nil {
			e.stopErr = e.bridge.Close()
		}
	})
	return e.stopErr
}

// Plugins returns the plugin registry.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// SyncStatus reports the state of the persistence mirror.
func (e *Engine) SyncStatus() types.SyncStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

func (e *Engine) setStatus(s types.SyncStatus) {
	e.statusMu.Lock()
	e.status = s
	e.statusMu.Unlock()
}

// ──────────────────────────────────────────────────
// Debounced snapshot sync
// ──────────────────────────────────────────────────

// scheduleSync marks the store dirty and nudges the sync worker. Only a
// single save is ever pending: a new mutation supersedes the previous
// unfired one rather than queuing another.
func (e *Engine) scheduleSync() {
	if e.bridge == nil {
		return
	}

	e.setStatus(types.SyncSyncing)

	select {
	case e.kick <- struct{}{}:
	default:
	}
}

// syncWorker debounces snapshot saves: each kick resets the timer, and
// only the snapshot taken when the timer finally fires is persisted.
func (e *Engine) syncWorker() {
	defer e.wg.Done()

	timer := time.NewTimer(e.syncDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-e.stopChan:
			// A kick can be queued but not yet received when both
			// channels are ready; drain it so the final flush is never
			// skipped.
			select {
			case <-e.kick:
				pending = true
			default:
			}
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				e.flush(context.Background())
			}
			return

		case <-e.kick:
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(e.syncDebounce)
			pending = true

		case <-timer.C:
			pending = false
			e.flush(context.Background())
		}
	}
}

// flush persists the current snapshot. Failure degrades the sync status
// and never propagates: the in-memory state is authoritative.
func (e *Engine) flush(ctx context.Context) {
	start := time.Now()
	snap := e.store.Export()

	if err := e.bridge.Save(ctx, snap); err != nil {
		e.logger.Warn("snapshot save failed, keeping local state",
			"error", err,
		)
		e.setStatus(types.SyncOfflinePending)
		e.plugins.EmitSyncFailed(ctx, err)
		return
	}

	elapsed := time.Since(start)
	e.setStatus(types.SyncSynced)
	e.plugins.EmitSnapshotSynced(ctx, elapsed)

	e.logger.Debug("snapshot persisted",
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// zero returns a zero Money in the engine currency.
func (e *Engine) zero() types.Money {
	return types.Zero(e.currency)
}

// checkCurrency rejects an amount denominated in anything but the
// ledger currency. Money arithmetic panics on mixed currencies, so this
// must run in the fail-fast block, before any mutation.
func (e *Engine) checkCurrency(field string, m types.Money) error {
	if !strings.EqualFold(m.Currency, e.currency) {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("currency %q does not match ledger currency %q", m.Currency, e.currency),
		}
	}
	return nil
}

// normalize maps a zero-value Money, the uninitialized field on a
// caller-built struct, to an explicit zero in the ledger currency.
func (e *Engine) normalize(m types.Money) types.Money {
	if m.Currency == "" && m.Amount == 0 {
		return e.zero()
	}
	return m
}
