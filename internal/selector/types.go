// Package selector produces a valid, non-empty Selection of convention
// domains and AI tool providers for one generation run. The blocking
// interactive prompt is abstracted behind the Selector interface so the
// materializer and error paths can be exercised without a terminal.
package selector

import (
	"errors"
	"slices"

	"github.com/convkit/convkit/internal/config"
	"github.com/convkit/convkit/internal/registry"
)

// Selection is the ephemeral result of domain/provider selection.
// It is created once per generation run and consumed by the materializer.
type Selection struct {
	// Domains is the non-empty set of chosen domain names,
	// a subset of the registry's domain keys.
	Domains []string

	// Providers is the set of chosen provider names. Empty is permitted:
	// it means "generate conventions with no provider wiring".
	Providers []string

	// Features holds the boolean feature toggles for this run.
	Features config.Features
}

// Result bundles the Selection with the metadata gathered alongside it.
type Result struct {
	Selection Selection

	ProjectName string
	AuthorName  string
	AuthorEmail string
	Format      config.Format

	// Warnings are non-fatal notes accumulated during selection,
	// e.g. falling back to default domains after a full deselect.
	Warnings []string
}

// Selector produces a Selection from a registry.
type Selector interface {
	Select(reg *registry.Registry) (*Result, error)
}

// Error definitions for the selector package.
var (
	// ErrCancelled is returned when the operator aborts the interactive prompt.
	ErrCancelled = errors.New("selector: selection cancelled by user")
)

// validateNames checks every name against the registry using the given
// membership test, returning the first unknown name.
func validateNames(names []string, known []string) (string, bool) {
	for _, n := range names {
		if !slices.Contains(known, n) {
			return n, false
		}
	}
	return "", true
}
