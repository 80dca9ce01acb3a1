package selector

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/convkit/convkit/internal/config"
	"github.com/convkit/convkit/internal/registry"
)

// HeadlessOptions carries the caller-supplied values for non-interactive
// selection. Zero values fall back to registry defaults.
type HeadlessOptions struct {
	ProjectName string
	AuthorName  string
	AuthorEmail string

	// Domains overrides the registry's default domain set when non-empty.
	Domains []string

	// Providers is used as-is; empty means no provider wiring.
	Providers []string

	Features config.Features
	Format   config.Format
}

// headless resolves a Selection from defaults without blocking.
type headless struct {
	opts   HeadlessOptions
	logger *slog.Logger
}

// NewHeadless creates a Selector that returns the registry's default
// domains and the caller-supplied provider list without prompting.
func NewHeadless(opts HeadlessOptions, logger *slog.Logger) Selector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &headless{opts: opts, logger: logger}
}

// Select resolves the Selection. It guarantees a non-empty domain set:
// when neither an override nor registry defaults yield any domain, the
// full registry domain list is used and a warning is recorded.
func (h *headless) Select(reg *registry.Registry) (*Result, error) {
	if len(reg.Domains) == 0 {
		return nil, registry.ErrEmptyRegistry
	}

	if unknown, ok := validateNames(h.opts.Domains, reg.DomainNames()); !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrDomainNotFound, unknown)
	}
	if unknown, ok := validateNames(h.opts.Providers, reg.ProviderNames()); !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrProviderNotFound, unknown)
	}

	result := &Result{
		ProjectName: h.opts.ProjectName,
		AuthorName:  h.opts.AuthorName,
		AuthorEmail: h.opts.AuthorEmail,
		Format:      h.opts.Format,
		Selection: Selection{
			Domains:   h.opts.Domains,
			Providers: h.opts.Providers,
			Features:  h.opts.Features,
		},
	}
	if result.Format == "" {
		result.Format = config.FormatYAML
	}

	if len(result.Selection.Domains) == 0 {
		result.Selection.Domains = reg.DefaultDomains()
	}
	if len(result.Selection.Domains) == 0 {
		// Registry has domains but none flagged default; an empty build
		// is worse than a broad one.
		result.Selection.Domains = reg.DomainNames()
		warn := "no default domains in registry; selecting all domains"
		result.Warnings = append(result.Warnings, warn)
		h.logger.Warn(warn)
	}
	if result.Selection.Providers == nil {
		result.Selection.Providers = []string{}
	}

	return result, nil
}
