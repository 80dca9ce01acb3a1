// Package manifest tracks the provenance of every file materialized into
// a generated conventions project. The manifest lets later runs tell
// tool-managed files apart from operator-created or operator-modified ones.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/convkit/convkit/internal/defs"
)

// Provenance describes how a tracked file came to exist.
type Provenance string

const (
	// ToolManaged files were written by convkit and are safe to overwrite.
	ToolManaged Provenance = "tool_managed"

	// UserCreated files existed before convkit touched the tree.
	UserCreated Provenance = "user_created"

	// UserModified files were written by convkit but changed afterwards.
	UserModified Provenance = "user_modified"
)

// Entry is one tracked file.
type Entry struct {
	Path       string     `json:"path"`
	Provenance Provenance `json:"provenance"`
	Hash       string     `json:"hash"`
	TrackedAt  string     `json:"tracked_at"`
}

// Manager tracks materialized files and persists the manifest.
// Implementations are safe for concurrent use.
type Manager interface {
	// Load reads the manifest from projectRoot, or starts empty when none
	// exists. Tracked tool-managed files whose on-disk content no longer
	// matches the recorded hash are re-marked as user-modified. It returns
	// the number of entries loaded.
	Load(projectRoot string) (int, error)

	// Track records a file with its provenance and content hash.
	Track(relPath string, prov Provenance, hash string) error

	// GetEntry returns the entry for relPath, if tracked.
	GetEntry(relPath string) (Entry, bool)

	// Entries returns all tracked entries sorted by path.
	Entries() []Entry

	// Save persists the manifest to the project root it was loaded from.
	Save() error
}

// manager is the concrete Manager implementation.
type manager struct {
	mu      sync.RWMutex
	root    string
	entries map[string]Entry
	now     func() time.Time
}

// NewManager creates an empty manifest Manager.
func NewManager() Manager {
	return &manager{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// manifestFile is the on-disk shape of the manifest.
type manifestFile struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Load reads the manifest file from projectRoot.
// A missing manifest is not an error; tracking starts empty.
func (m *manager) Load(projectRoot string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = filepath.Clean(projectRoot)
	m.entries = make(map[string]Entry)

	data, err := os.ReadFile(filepath.Join(m.root, defs.ManifestJSON))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("manifest load: %w", err)
	}

	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("manifest parse: %w", err)
	}

	for _, e := range file.Entries {
		if e.Provenance == ToolManaged {
			if current, err := os.ReadFile(filepath.Join(m.root, filepath.FromSlash(e.Path))); err == nil {
				if HashBytes(current) != e.Hash {
					e.Provenance = UserModified
				}
			}
		}
		m.entries[e.Path] = e
	}
	return len(m.entries), nil
}

// Track records a file. Re-tracking an existing path overwrites its entry.
func (m *manager) Track(relPath string, prov Provenance, hash string) error {
	if relPath == "" {
		return fmt.Errorf("manifest track: empty path")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[filepath.ToSlash(relPath)] = Entry{
		Path:       filepath.ToSlash(relPath),
		Provenance: prov,
		Hash:       hash,
		TrackedAt:  m.now().UTC().Format(time.RFC3339),
	}
	return nil
}

// GetEntry returns the entry for relPath.
func (m *manager) GetEntry(relPath string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[filepath.ToSlash(relPath)]
	return e, ok
}

// Entries returns all entries sorted by path for stable serialization.
func (m *manager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

// Save writes the manifest to the project root set by Load.
func (m *manager) Save() error {
	m.mu.RLock()
	root := m.root
	m.mu.RUnlock()

	if root == "" {
		return fmt.Errorf("manifest save: not loaded")
	}

	file := manifestFile{Version: 1, Entries: m.Entries()}
	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest encode: %w", err)
	}

	path := filepath.Join(root, defs.ManifestJSON)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("manifest write %q: %w", path, err)
	}
	return nil
}

// HashBytes returns the hex-encoded SHA-256 of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
