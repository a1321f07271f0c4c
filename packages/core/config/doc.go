// Package config handles configuration loading for randspec.
//
// It provides functionality for:
//   - Loading configuration from .randspec.yml files
//   - Default configuration values
//   - RANDSPEC_* environment overrides (with .env preloading)
package config
