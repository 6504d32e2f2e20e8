// Package config loads and validates application configuration from
// defaults, an optional config.yaml and SCANPULSE_* environment variables,
// in that order of precedence.
package config
