package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/convkit/convkit/internal/defs"
	"github.com/convkit/convkit/internal/registry"
)

// registryCandidates returns the paths searched for the domain registry,
// in priority order.
func registryCandidates() []string {
	var candidates []string

	if env := os.Getenv("CONVKIT_REGISTRY"); env != "" {
		candidates = append(candidates, env)
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, defs.CommunityDomainsDir, defs.RegistryYAML))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".convkit", defs.CommunityDomainsDir, defs.RegistryYAML))
	}

	return candidates
}

// resolveRegistryPath returns the registry document path: the flag value
// when given, otherwise the first existing candidate location.
func resolveRegistryPath(flagVal string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}

	candidates := registryCandidates()
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: registry not found; searched: %s",
		registry.ErrRegistryLoad, strings.Join(candidates, ", "))
}

// resolveSourceDir returns the community domain source tree: the flag
// value when given, otherwise the directory containing the registry.
func resolveSourceDir(flagVal, registryPath string) string {
	if flagVal != "" {
		return flagVal
	}
	return filepath.Dir(registryPath)
}
