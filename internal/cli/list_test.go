package cli

import (
	"strings"
	"testing"

	"github.com/convkit/convkit/internal/registry"
)

func TestListCommand(t *testing.T) {
	registryPath, _ := writeSourceTree(t)

	out, err := runConvkit(t, "list", "--registry", registryPath)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	for _, want := range []string{"Domains", "git", "testing", "Providers", "Claude"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCapabilitySummary(t *testing.T) {
	tests := []struct {
		name string
		caps registry.Capabilities
		want string
	}{
		{
			name: "no capabilities",
			caps: registry.Capabilities{},
			want: "no declared capabilities",
		},
		{
			name: "imports and commands",
			caps: registry.Capabilities{SupportsImports: true, SupportsCommands: true},
			want: "imports, commands",
		},
		{
			name: "context window",
			caps: registry.Capabilities{MaxContextTokens: 200000},
			want: "200k context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capabilitySummary(tt.caps); got != tt.want {
				t.Errorf("capabilitySummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
