// Package materialize turns a Selection into an on-disk project tree:
// it copies the selected domain files, prunes unselected provider and
// feature paths, and writes the configuration record last.
package materialize

import (
	"errors"
	"fmt"
)

// Sentinel errors for materialization.
var (
	// ErrDomainCopy indicates a selected domain's source files could not
	// be found or copied. This aborts the whole materialization: a
	// silently incomplete convention set is worse than a visible failure.
	ErrDomainCopy = errors.New("materialize: domain copy failed")

	// ErrPathTraversal indicates a registry or selection path escapes the
	// project root.
	ErrPathTraversal = errors.New("materialize: path escapes project root")
)

// DomainCopyError names the domain and file that failed to copy.
type DomainCopyError struct {
	Domain string
	File   string
	Err    error
}

// Error implements the error interface.
func (e *DomainCopyError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("materialize: domain %q: file %q: %v", e.Domain, e.File, e.Err)
	}
	return fmt.Sprintf("materialize: domain %q: %v", e.Domain, e.Err)
}

// Unwrap exposes both the ErrDomainCopy sentinel and the underlying
// cause to errors.Is.
func (e *DomainCopyError) Unwrap() []error {
	return []error{ErrDomainCopy, e.Err}
}
