// Package extension provides the Forge extension adapter for Khata.
//
// It implements the forge.Extension interface to integrate Khata
// into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.khata" or "khata" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	khata "github.com/xraph/khata"
	"github.com/xraph/khata/bridge"
	"github.com/xraph/khata/bridge/file"
	"github.com/xraph/khata/bridge/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "khata"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Credit and ledger consistency engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// migrator is implemented by bridges that create their own schema.
type migrator interface {
	Migrate(ctx context.Context) error
}

// Extension adapts Khata as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config    Config
	engine    *khata.Engine
	bridge    bridge.Bridge
	khataOpts []khata.Option
}

// New creates a new Khata Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Khata engine.
// This is nil until Register is called.
func (e *Extension) Engine() *khata.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Without a programmatic bridge, fall back to the configured file
	// path, then to a throwaway in-memory bridge.
	if e.bridge == nil {
		if e.config.FilePath != "" {
			e.bridge = file.New(e.config.FilePath)
		} else {
			e.bridge = memory.New()
		}
	}

	opts := e.buildKhataOpts()

	e.engine = khata.New(e.bridge, opts...)

	return vessel.Provide(fapp.Container(), func() (*khata.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("khata: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if m, ok := e.bridge.(migrator); ok {
			if err := m.Migrate(ctx); err != nil {
				return err
			}
		}
	}

	if err := e.engine.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.bridge == nil {
		return errors.New("khata: bridge not initialized")
	}
	return e.bridge.Ping(ctx)
}

// buildKhataOpts constructs khata.Option values from the resolved config.
func (e *Extension) buildKhataOpts() []khata.Option {
	opts := make([]khata.Option, 0, len(e.khataOpts)+4)

	if e.config.Currency != "" {
		opts = append(opts, khata.WithCurrency(e.config.Currency))
	}
	if e.config.SyncDebounce > 0 {
		opts = append(opts, khata.WithSyncDebounce(e.config.SyncDebounce))
	}

	switch e.config.DeletionPolicy {
	case "cascade":
		opts = append(opts, khata.WithDeletionPolicy(khata.DeletionCascade))
	case "restrict":
		opts = append(opts, khata.WithDeletionPolicy(khata.DeletionRestrict))
	case "", "detach":
		// Engine default.
	}

	if e.config.RestoreStock {
		opts = append(opts, khata.WithStockRestoreOnDelete(true))
	}

	// Append any pass-through khata options.
	opts = append(opts, e.khataOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("khata: configuration is required but not found in config files; " +
				"ensure 'extensions.khata' or 'khata' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("khata: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("currency", e.config.Currency),
		forge.F("sync_debounce", e.config.SyncDebounce),
		forge.F("deletion_policy", e.config.DeletionPolicy),
		forge.F("restore_stock", e.config.RestoreStock),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.khata" first (namespaced pattern).
	if cm.IsSet("extensions.khata") {
		if err := cm.Bind("extensions.khata", &cfg); err == nil {
			e.Logger().Debug("khata: loaded config from file",
				forge.F("key", "extensions.khata"),
			)
			return cfg, true
		}
		e.Logger().Warn("khata: failed to bind extensions.khata config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "khata" key.
	if cm.IsSet("khata") {
		if err := cm.Bind("khata", &cfg); err == nil {
			e.Logger().Debug("khata: loaded config from file",
				forge.F("key", "khata"),
			)
			return cfg, true
		}
		e.Logger().Warn("khata: failed to bind khata config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.SyncDebounce == 0 {
		cfg.SyncDebounce = defaults.SyncDebounce
	}
	if cfg.DeletionPolicy == "" {
		cfg.DeletionPolicy = defaults.DeletionPolicy
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if programmaticConfig.RestoreStock {
		yamlConfig.RestoreStock = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Currency == "" && programmaticConfig.Currency != "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}
	if yamlConfig.DeletionPolicy == "" && programmaticConfig.DeletionPolicy != "" {
		yamlConfig.DeletionPolicy = programmaticConfig.DeletionPolicy
	}
	if yamlConfig.FilePath == "" && programmaticConfig.FilePath != "" {
		yamlConfig.FilePath = programmaticConfig.FilePath
	}

	// Duration fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.SyncDebounce == 0 && programmaticConfig.SyncDebounce != 0 {
		yamlConfig.SyncDebounce = programmaticConfig.SyncDebounce
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
