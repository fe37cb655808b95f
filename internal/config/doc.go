// Package config loads, normalizes, and validates shuku configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, resolves codec aliases, and turns the
// polymorphic quality settings into their tagged per-codec interpretation.
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical codec names, and clear validation errors.
package config
