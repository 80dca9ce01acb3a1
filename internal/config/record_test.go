package config

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces to hyphens", "My AI Conventions", "my-ai-conventions"},
		{"underscores to hyphens", "my_project", "my-project"},
		{"collapses runs", "a  b __ c", "a-b-c"},
		{"already a slug", "team-conventions", "team-conventions"},
		{"trims whitespace", "  Edge  ", "edge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecordNormalize(t *testing.T) {
	t.Run("derives slug from name", func(t *testing.T) {
		rec := &Record{ProjectName: "My Project"}
		rec.Normalize()
		if rec.ProjectSlug != "my-project" {
			t.Errorf("ProjectSlug = %q, want %q", rec.ProjectSlug, "my-project")
		}
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		rec := &Record{ProjectName: "My Project", ProjectSlug: "custom"}
		rec.Normalize()
		if rec.ProjectSlug != "custom" {
			t.Errorf("ProjectSlug = %q, want %q", rec.ProjectSlug, "custom")
		}
	})

	t.Run("nil slices become empty", func(t *testing.T) {
		rec := &Record{}
		rec.Normalize()
		if rec.Domains == nil || rec.Providers == nil {
			t.Errorf("Domains = %v, Providers = %v, want non-nil", rec.Domains, rec.Providers)
		}
	})
}

func TestFeaturesEnabledNames(t *testing.T) {
	tests := []struct {
		name  string
		feats Features
		want  []string
	}{
		{"all on", DefaultFeatures(), []string{"learning_capture", "context_canary", "domain_composition"}},
		{"all off", Features{}, nil},
		{"canary only", Features{ContextCanary: true}, []string{"context_canary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.feats.EnabledNames(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EnabledNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDefaultRecord(t *testing.T) {
	rec := NewDefaultRecord()
	if rec.ProjectName != DefaultProjectName {
		t.Errorf("ProjectName = %q, want %q", rec.ProjectName, DefaultProjectName)
	}
	if rec.ProjectSlug != "my-ai-conventions" {
		t.Errorf("ProjectSlug = %q", rec.ProjectSlug)
	}
	if !rec.Features.LearningCapture || !rec.Features.ContextCanary || !rec.Features.DomainComposition {
		t.Errorf("Features = %+v, want all enabled", rec.Features)
	}
}
