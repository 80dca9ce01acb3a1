package defs

// Common file names used across the project.
const (
	// RegistryYAML is the community domain registry document.
	RegistryYAML = "registry.yaml"

	// RecordBasename is the base name of the generated configuration
	// record; the extension depends on the chosen format.
	RecordBasename = ".ai-conventions"

	// ManifestJSON tracks every file materialized into a generated project.
	ManifestJSON = ".convkit-manifest.json"

	// DomainsDir is the directory inside a generated project that holds
	// the selected convention domains.
	DomainsDir = "domains"

	// CommunityDomainsDir is the default source tree of community domains.
	CommunityDomainsDir = "community-domains"

	// DomainCoreMD is the entry file every domain is expected to carry.
	DomainCoreMD = "core.md"
)

// Feature-owned paths removed from a generated project when the
// corresponding toggle is off.
var (
	// LearningCapturePaths hold the capture/review command scripts and the
	// staging area for captured learnings.
	LearningCapturePaths = []string{"commands", "staging"}

	// ContextCanaryPaths hold the canary document used for context
	// freshness checks.
	ContextCanaryPaths = []string{"docs/canary.md"}
)
