// Package config loads, normalizes, and validates metawipe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads the TOML file at ~/.config/metawipe/config.toml.
// The Config type centralizes every knob the CLI needs: log/backup/history
// locations, walker exclusions, external tool commands, and timeouts.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
