// Package config loads, normalizes, and validates cinetree's TOML
// configuration. Values resolve in order: built-in defaults, the config
// file, then environment overrides for secrets (OMDB_API_KEY).
package config
