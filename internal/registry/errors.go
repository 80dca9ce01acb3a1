// Package registry loads and validates the community domain registry.
// The registry is an immutable value loaded once per invocation and passed
// explicitly to the selector and materializer.
package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations.
var (
	// ErrRegistryLoad indicates the registry document is missing,
	// malformed, or fails validation.
	ErrRegistryLoad = errors.New("registry: load failed")

	// ErrEmptyRegistry indicates the registry defines zero domains.
	// This is a fatal setup error, not recoverable within a run.
	ErrEmptyRegistry = errors.New("registry: no domains defined")

	// ErrDomainNotFound indicates a referenced domain is not in the registry.
	ErrDomainNotFound = errors.New("registry: domain not found")

	// ErrProviderNotFound indicates a referenced provider is not in the registry.
	ErrProviderNotFound = errors.New("registry: provider not found")
)

// EntryError describes a validation failure on a single registry entry.
type EntryError struct {
	Kind    string // "domain" or "provider"
	Name    string // entry name, or "#<index>" when the name itself is missing
	Message string
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("registry: %s %q: %s", e.Kind, e.Name, e.Message)
}

// Unwrap returns ErrRegistryLoad so callers can match with errors.Is.
func (e *EntryError) Unwrap() error {
	return ErrRegistryLoad
}
