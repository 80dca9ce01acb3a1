package config

import "strings"

// Features holds the boolean feature toggles recorded for a generation run.
type Features struct {
	// LearningCapture enables the capture/review command scripts and the
	// staging area in the generated project.
	LearningCapture bool `yaml:"learning_capture" toml:"learning_capture" json:"learning_capture"`

	// ContextCanary enables the canary document used to verify that the
	// conventions are actually loaded into an assistant's context.
	ContextCanary bool `yaml:"context_canary" toml:"context_canary" json:"context_canary"`

	// DomainComposition enables domain inheritance and shorthand
	// cross-references between domain files.
	DomainComposition bool `yaml:"domain_composition" toml:"domain_composition" json:"domain_composition"`
}

// EnabledNames returns the toggle names that are on, using the registry's
// conditional-path keys.
func (f Features) EnabledNames() []string {
	var names []string
	if f.LearningCapture {
		names = append(names, "learning_capture")
	}
	if f.ContextCanary {
		names = append(names, "context_canary")
	}
	if f.DomainComposition {
		names = append(names, "domain_composition")
	}
	return names
}

// Record is the generated configuration record: a 1:1 snapshot of the
// selection used for one generation run plus project metadata.
type Record struct {
	ProjectName string `yaml:"project_name" toml:"project_name" json:"project_name"`
	ProjectSlug string `yaml:"project_slug" toml:"project_slug" json:"project_slug"`
	AuthorName  string `yaml:"author_name" toml:"author_name" json:"author_name"`
	AuthorEmail string `yaml:"author_email,omitempty" toml:"author_email,omitempty" json:"author_email,omitempty"`

	Domains   []string `yaml:"domains" toml:"domains" json:"domains"`
	Providers []string `yaml:"providers" toml:"providers" json:"providers"`
	Features  Features `yaml:"features" toml:"features" json:"features"`

	ToolVersion string `yaml:"tool_version,omitempty" toml:"tool_version,omitempty" json:"tool_version,omitempty"`
	GeneratedAt string `yaml:"generated_at,omitempty" toml:"generated_at,omitempty" json:"generated_at,omitempty"`
}

// Slugify derives a project slug from a project name: lowercase with
// spaces and underscores collapsed to hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return slug
}

// Normalize fills derivable fields: an empty slug is derived from the
// project name, and nil slices become empty so the serialized record
// always carries explicit domain/provider lists.
func (r *Record) Normalize() {
	if r.ProjectSlug == "" {
		r.ProjectSlug = Slugify(r.ProjectName)
	}
	if r.Domains == nil {
		r.Domains = []string{}
	}
	if r.Providers == nil {
		r.Providers = []string{}
	}
}
