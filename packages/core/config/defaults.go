package config

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Reporter:  "console",
		HistoryDB: ".randspec.history.db",
	}
}
