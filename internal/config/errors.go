// Package config defines the configuration record written into every
// generated conventions project and the codecs that persist it.
// The record is the sole durable artifact of a generation run: it must
// always be re-derivable from the selection that produced it.
package config

import "errors"

// Sentinel errors for configuration record operations.
var (
	// ErrRecordNotFound indicates no configuration record exists at any
	// of the well-known paths.
	ErrRecordNotFound = errors.New("config: record not found")

	// ErrUnsupportedFormat indicates an unknown serialization format.
	ErrUnsupportedFormat = errors.New("config: unsupported format, must be one of: yaml, toml, json")

	// ErrInvalidRecord indicates the record file exists but cannot be parsed.
	ErrInvalidRecord = errors.New("config: invalid record")
)
