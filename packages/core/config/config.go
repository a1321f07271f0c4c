package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the randspec configuration.
type Config struct {
	Seed       *int64   `yaml:"seed,omitempty"`
	Reporter   string   `yaml:"reporter,omitempty"`   // console, progress, tap, json
	NoColor    *bool    `yaml:"noColor,omitempty"`
	ForceColor *bool    `yaml:"forceColor,omitempty"`
	Verbose    *bool    `yaml:"verbose,omitempty"`
	OnlyFiles  []string `yaml:"onlyFiles,omitempty"`  // absolute paths of test declaration files
	HistoryDB  string   `yaml:"historyDb,omitempty"`
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetSeed returns the configured seed, defaulting to 0.
func (c *Config) GetSeed() int64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// GetNoColor returns the no-color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetForceColor returns the force-color setting, defaulting to false.
func (c *Config) GetForceColor() bool {
	return getBool(c.ForceColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false.
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// ConfigFilenames contains the config file names searched in order.
var ConfigFilenames = []string{
	".randspec.yml",
	".randspec.yaml",
	"randspec.yml",
	".randspecrc.yml",
}

// LoadConfig loads configuration from the given path, or searches the
// working directory for one of ConfigFilenames. A .env file, when present,
// is loaded into the environment first; RANDSPEC_* variables then override
// file values.
func LoadConfig(path string) (*Config, error) {
	// Missing .env is not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		for _, name := range ConfigFilenames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("RANDSPEC_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing RANDSPEC_SEED: %w", err)
		}
		cfg.Seed = &seed
	}
	if v := os.Getenv("RANDSPEC_REPORTER"); v != "" {
		cfg.Reporter = v
	}
	if v := os.Getenv("RANDSPEC_HISTORY_DB"); v != "" {
		cfg.HistoryDB = v
	}
	if v, ok := envBool("RANDSPEC_NO_COLOR"); ok {
		cfg.NoColor = BoolPtr(v)
	}
	if v, ok := envBool("RANDSPEC_FORCE_COLOR"); ok {
		cfg.ForceColor = BoolPtr(v)
	}
	if v, ok := envBool("RANDSPEC_VERBOSE"); ok {
		cfg.Verbose = BoolPtr(v)
	}
	return nil
}

func envBool(name string) (bool, bool) {
	v := os.Getenv(name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		// Any non-empty, non-boolean value counts as set, matching the
		// NO_COLOR convention.
		return true, true
	}
	return b, true
}
