// Package config loads, normalizes, and validates read study platform
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// READSTUDY_PASSWORD_HASH. The Config type centralizes every knob the server
// and CLI need, so the CT data directory, results database, and API bind
// address are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
