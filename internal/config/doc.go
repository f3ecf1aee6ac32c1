// Package config loads, normalizes, and validates vidaudit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// ffprobe and exiftool binaries (VIDAUDIT_FFPROBE, VIDAUDIT_EXIFTOOL). Unknown
// keys are rejected so typos surface as errors rather than silent defaults.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lowercased extensions, and clear validation errors.
package config
