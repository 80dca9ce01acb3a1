// Package resolver implements domain composition: shorthand references
// between convention files and inheritance chains between domains.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/convkit/convkit/internal/defs"
)

// Sentinel errors for domain resolution.
var (
	// ErrCircularDependency indicates a cycle in the domain inheritance chain.
	ErrCircularDependency = errors.New("resolver: circular dependency")

	// ErrDomainFileMissing indicates a domain's core file is absent.
	ErrDomainFileMissing = errors.New("resolver: domain file missing")
)

// shorthandPattern matches %domain and %domain%section tokens.
// Boundary rules (no %% on either side, no trailing word character)
// are enforced in ResolveShorthand since RE2 has no lookaround.
var shorthandPattern = regexp.MustCompile(`%[a-zA-Z_-]+(?:%[a-zA-Z0-9_-]+)?`)

// wordChar reports whether b continues an identifier.
func wordChar(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ResolveShorthand expands shorthand domain references to @domains paths:
//
//	%writing              -> @domains/writing/core.md
//	%testing%unit-tests   -> @domains/testing/unit-tests.md
//
// Doubled percent signs (%%) are left untouched.
func ResolveShorthand(content string) string {
	matches := shorthandPattern.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0

	for _, m := range matches {
		start, end := m[0], m[1]

		// Preceded by another % means an escaped %% sequence.
		if start > 0 && content[start-1] == '%' {
			continue
		}
		// Followed by % or a word character means this is not a complete token.
		if end < len(content) && (content[end] == '%' || wordChar(content[end])) {
			continue
		}

		token := content[start+1 : end] // strip leading %
		domain, section, hasSection := strings.Cut(token, "%")
		if !hasSection {
			section = "core"
		}

		b.WriteString(content[last:start])
		fmt.Fprintf(&b, "@domains/%s/%s.md", domain, section)
		last = end
	}

	b.WriteString(content[last:])
	return b.String()
}

// frontMatter is the YAML header a domain core file may carry.
type frontMatter struct {
	Extends extendsList `yaml:"extends"`
}

// extendsList accepts either a single parent name or a list of names.
type extendsList []string

// UnmarshalYAML implements yaml.Unmarshaler for scalar-or-sequence values.
func (e *extendsList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s != "" {
			*e = []string{s}
		}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*e = list
		return nil
	}
	return fmt.Errorf("extends: unexpected YAML node kind %d", value.Kind)
}

// Resolver loads domain core files and flattens inheritance chains.
// It reads from an fs.FS rooted at the domains directory, so tests can
// inject a fstest.MapFS.
type Resolver struct {
	fsys  fs.FS
	cache map[string]string
}

// New creates a Resolver over the given domains filesystem.
func New(fsys fs.FS) *Resolver {
	return &Resolver{
		fsys:  fsys,
		cache: make(map[string]string),
	}
}

// Resolve returns the combined content of the named domain and all of its
// parents, parents first. Shorthand references in the combined content
// are expanded. Cycles in the inheritance chain are an error.
func (r *Resolver) Resolve(name string) (string, error) {
	content, err := r.resolve(name, nil)
	if err != nil {
		return "", err
	}
	return ResolveShorthand(content), nil
}

// resolve walks the inheritance chain, carrying the visit path for cycle
// detection and error reporting.
func (r *Resolver) resolve(name string, visited []string) (string, error) {
	for _, seen := range visited {
		if seen == name {
			return "", fmt.Errorf("%w: %s -> %s",
				ErrCircularDependency, strings.Join(visited, " -> "), name)
		}
	}

	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	body, parents, err := r.loadDomainFile(name)
	if err != nil {
		return "", err
	}

	if len(parents) == 0 {
		r.cache[name] = body
		return body, nil
	}

	chain := append(append([]string(nil), visited...), name)

	var parts []string
	for _, parent := range parents {
		parentContent, err := r.resolve(parent, chain)
		if err != nil {
			return "", err
		}
		parts = append(parts, parentContent)
	}
	parts = append(parts, body)

	combined := strings.Join(parts, "\n\n")
	r.cache[name] = combined
	return combined, nil
}

// loadDomainFile reads <name>/core.md and splits off its front matter.
func (r *Resolver) loadDomainFile(name string) (body string, parents []string, err error) {
	filePath := path.Join(name, defs.DomainCoreMD)
	data, err := fs.ReadFile(r.fsys, filePath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrDomainFileMissing, filePath)
	}

	content := string(data)
	fmBlock, rest, found := splitFrontMatter(content)
	if !found {
		return content, nil, nil
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(fmBlock), &fm); err != nil {
		// Malformed front matter is treated as plain content.
		return content, nil, nil
	}

	return rest, fm.Extends, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from
// the markdown body. Returns found=false when no front matter exists.
func splitFrontMatter(content string) (fm, body string, found bool) {
	const delim = "---"

	trimmed := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(trimmed, delim+"\n") && trimmed != delim {
		return "", content, false
	}

	rest := strings.TrimPrefix(trimmed, delim+"\n")
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return "", content, false
	}

	fm = rest[:end]
	body = rest[end+len("\n"+delim):]
	body = strings.TrimPrefix(body, "\n")
	return fm, body, true
}
