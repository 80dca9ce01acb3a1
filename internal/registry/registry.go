package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Domain is a named, versioned bundle of convention files.
// Domains are defined statically in the registry and never mutated.
type Domain struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Author      string   `yaml:"author" json:"author"`
	Version     string   `yaml:"version" json:"version"`
	Files       []string `yaml:"files" json:"files"`
	Default     bool     `yaml:"default" json:"default"`
	Extends     string   `yaml:"extends" json:"extends"`
}

// Capabilities describes what an AI tool integration supports.
// These flags are descriptive metadata surfaced by `convkit list`;
// no materialization logic branches on them.
type Capabilities struct {
	SupportsImports  bool   `yaml:"supports_imports" json:"supports_imports"`
	SupportsCommands bool   `yaml:"supports_commands" json:"supports_commands"`
	MaxContextTokens int    `yaml:"max_context_tokens" json:"max_context_tokens"`
	FileWatch        bool   `yaml:"file_watch" json:"file_watch"`
	Symlinks         bool   `yaml:"symlinks" json:"symlinks"`
	ConfigFormat     string `yaml:"config_format" json:"config_format"`
}

// Provider is an AI tool integration target with the template paths it owns.
type Provider struct {
	Name         string       `yaml:"name" json:"name"`
	Description  string       `yaml:"description" json:"description"`
	Paths        []string     `yaml:"paths" json:"paths"`
	Capabilities Capabilities `yaml:"capabilities" json:"capabilities"`

	// ConditionalPaths maps a feature toggle name to additional paths the
	// provider owns only when that feature is enabled.
	ConditionalPaths map[string][]string `yaml:"conditional_paths" json:"conditional_paths"`
}

// Registry is the immutable set of domains and providers available for
// one generation run.
type Registry struct {
	Domains   []Domain   `yaml:"domains" json:"domains"`
	Providers []Provider `yaml:"providers" json:"providers"`
}

// Load reads a registry document from path. Documents with a .json
// extension are parsed as JSON; everything else is parsed as YAML.
// Returns an error wrapping ErrRegistryLoad when the document is missing,
// malformed, or fails validation.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrRegistryLoad, path, err)
	}

	reg := &Registry{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, reg); err != nil {
			return nil, fmt.Errorf("%w: parse %q: %v", ErrRegistryLoad, path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, reg); err != nil {
			return nil, fmt.Errorf("%w: parse %q: %v", ErrRegistryLoad, path, err)
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Validate checks required fields on every entry. Every domain needs a
// name and at least one file; every provider needs a name and at least
// one owned path. Duplicate names are rejected.
func (r *Registry) Validate() error {
	seenDomains := make(map[string]bool, len(r.Domains))
	for i, d := range r.Domains {
		name := d.Name
		if name == "" {
			return &EntryError{Kind: "domain", Name: fmt.Sprintf("#%d", i), Message: "missing name"}
		}
		if len(d.Files) == 0 {
			return &EntryError{Kind: "domain", Name: name, Message: "missing files"}
		}
		if seenDomains[name] {
			return &EntryError{Kind: "domain", Name: name, Message: "duplicate name"}
		}
		seenDomains[name] = true
	}

	seenProviders := make(map[string]bool, len(r.Providers))
	for i, p := range r.Providers {
		name := p.Name
		if name == "" {
			return &EntryError{Kind: "provider", Name: fmt.Sprintf("#%d", i), Message: "missing name"}
		}
		if len(p.Paths) == 0 {
			return &EntryError{Kind: "provider", Name: name, Message: "missing paths"}
		}
		if seenProviders[name] {
			return &EntryError{Kind: "provider", Name: name, Message: "duplicate name"}
		}
		seenProviders[name] = true
	}

	return nil
}

// Domain returns the named domain. The second return value reports
// whether it was found.
func (r *Registry) Domain(name string) (Domain, bool) {
	for _, d := range r.Domains {
		if d.Name == name {
			return d, true
		}
	}
	return Domain{}, false
}

// Provider returns the named provider. The second return value reports
// whether it was found.
func (r *Registry) Provider(name string) (Provider, bool) {
	for _, p := range r.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return Provider{}, false
}

// DefaultDomains returns the names of all default-flagged domains.
func (r *Registry) DefaultDomains() []string {
	var names []string
	for _, d := range r.Domains {
		if d.Default {
			names = append(names, d.Name)
		}
	}
	return names
}

// DomainNames returns all domain names in registry order.
func (r *Registry) DomainNames() []string {
	names := make([]string, len(r.Domains))
	for i, d := range r.Domains {
		names[i] = d.Name
	}
	return names
}

// ProviderNames returns all provider names in registry order.
func (r *Registry) ProviderNames() []string {
	names := make([]string, len(r.Providers))
	for i, p := range r.Providers {
		names[i] = p.Name
	}
	return names
}

// HasDomain reports whether the named domain exists in the registry.
func (r *Registry) HasDomain(name string) bool {
	return slices.Contains(r.DomainNames(), name)
}

// HasProvider reports whether the named provider exists in the registry.
func (r *Registry) HasProvider(name string) bool {
	return slices.Contains(r.ProviderNames(), name)
}

// OwnedPaths returns every path the named provider owns, including
// conditional paths for the given enabled features.
func (p *Provider) OwnedPaths(enabledFeatures []string) []string {
	paths := slices.Clone(p.Paths)
	for _, feat := range enabledFeatures {
		paths = append(paths, p.ConditionalPaths[feat]...)
	}
	return paths
}

// AllPaths returns every path the named provider can own, unconditionally.
func (p *Provider) AllPaths() []string {
	paths := slices.Clone(p.Paths)
	for _, extra := range p.ConditionalPaths {
		paths = append(paths, extra...)
	}
	return paths
}
