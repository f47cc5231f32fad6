package extension

import (
	"time"

	khata "github.com/xraph/khata"
	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/plugin"
)

// Option configures the Khata Forge extension.
type Option func(*Extension)

// WithBridge sets the persistence bridge for the engine.
func WithBridge(b bridge.Bridge) Option {
	return func(e *Extension) {
		e.bridge = b
	}
}

// WithKhataOption passes a khata.Option through to the underlying engine.
func WithKhataOption(opt khata.Option) Option {
	return func(e *Extension) {
		e.khataOpts = append(e.khataOpts, opt)
	}
}

// WithPlugin registers a khata plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.khataOpts = append(e.khataOpts, khata.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents bridge auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithCurrency sets the ledger currency code.
func WithCurrency(currency string) Option {
	return func(e *Extension) { e.config.Currency = currency }
}

// WithSyncDebounce sets the snapshot save debounce window.
func WithSyncDebounce(d time.Duration) Option {
	return func(e *Extension) { e.config.SyncDebounce = d }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
