// Package config loads, normalizes, and validates shelve configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours SHELVE_* environment overrides.
// The Config type centralizes every knob the CLI needs: where run state and
// logs live, the default organize behaviour, and an optional ordered category
// table that replaces the built-in one.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
