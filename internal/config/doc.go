// Package config loads, normalizes, and validates wpactl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and monitor need: the daemon control-socket directory and
// interface, the local socket directory, request timeouts, logging, and the
// persistent event log.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
