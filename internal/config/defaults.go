package config

// DefaultWindowSeconds is the trailing window applied when no override is
// configured.
const DefaultWindowSeconds = 60

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Seconds: DefaultWindowSeconds,
		},
		Output: OutputConfig{
			Warnings: false,
		},
		Storage: StorageConfig{
			Path:       "~/.config/txmedian",
			SQLiteFile: "txmedian.db",
		},
		Ledger: LedgerConfig{
			Enabled: true,
		},
	}
}
