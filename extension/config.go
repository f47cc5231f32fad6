package extension

import "time"

// Config holds the Khata extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.khata" or "khata" keys).
type Config struct {
	// DisableMigrate prevents bridge auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Currency is the ledger currency code (default: "lkr").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// SyncDebounce is how long the engine waits after the last mutation
	// before persisting a snapshot (default: 1s).
	SyncDebounce time.Duration `json:"sync_debounce" mapstructure:"sync_debounce" yaml:"sync_debounce"`

	// DeletionPolicy controls buyer deletes: "detach", "cascade", or
	// "restrict" (default: "detach").
	DeletionPolicy string `json:"deletion_policy" mapstructure:"deletion_policy" yaml:"deletion_policy"`

	// RestoreStock makes transaction deletes put consumed stock back
	// into the sale branch's pool.
	RestoreStock bool `json:"restore_stock" mapstructure:"restore_stock" yaml:"restore_stock"`

	// FilePath, when set and no bridge was provided programmatically,
	// makes the extension persist through a file bridge at this path.
	FilePath string `json:"file_path" mapstructure:"file_path" yaml:"file_path"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Currency:       "lkr",
		SyncDebounce:   time.Second,
		DeletionPolicy: "detach",
	}
}
