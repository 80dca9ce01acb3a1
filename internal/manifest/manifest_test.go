package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/convkit/convkit/internal/defs"
)

func TestManagerTrack(t *testing.T) {
	t.Run("tracks and retrieves entries", func(t *testing.T) {
		m := NewManager()
		if err := m.Track("domains/git/core.md", ToolManaged, "abc"); err != nil {
			t.Fatalf("Track() error = %v", err)
		}

		e, ok := m.GetEntry("domains/git/core.md")
		if !ok {
			t.Fatal("GetEntry() not found")
		}
		if e.Provenance != ToolManaged {
			t.Errorf("Provenance = %q, want %q", e.Provenance, ToolManaged)
		}
		if e.Hash != "abc" {
			t.Errorf("Hash = %q, want %q", e.Hash, "abc")
		}
	})

	t.Run("empty path is an error", func(t *testing.T) {
		if err := NewManager().Track("", ToolManaged, "abc"); err == nil {
			t.Error("Track(\"\") error = nil, want error")
		}
	})

	t.Run("re-tracking overwrites", func(t *testing.T) {
		m := NewManager()
		_ = m.Track("a.md", ToolManaged, "h1")
		_ = m.Track("a.md", UserModified, "h2")

		e, _ := m.GetEntry("a.md")
		if e.Provenance != UserModified || e.Hash != "h2" {
			t.Errorf("entry = %+v, want overwritten", e)
		}
	})

	t.Run("entries sorted by path", func(t *testing.T) {
		m := NewManager()
		_ = m.Track("z.md", ToolManaged, "h")
		_ = m.Track("a.md", ToolManaged, "h")
		_ = m.Track("m/x.md", ToolManaged, "h")

		entries := m.Entries()
		if len(entries) != 3 {
			t.Fatalf("len(Entries()) = %d, want 3", len(entries))
		}
		if entries[0].Path != "a.md" || entries[2].Path != "z.md" {
			t.Errorf("Entries() order = %v", entries)
		}
	})
}

func TestManagerLoadSave(t *testing.T) {
	t.Run("missing manifest starts empty", func(t *testing.T) {
		m := NewManager()
		n, err := m.Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if n != 0 {
			t.Errorf("Load() = %d entries, want 0", n)
		}
	})

	t.Run("save then load round trips", func(t *testing.T) {
		root := t.TempDir()

		m := NewManager()
		if _, err := m.Load(root); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		_ = m.Track("domains/git/core.md", ToolManaged, HashBytes([]byte("content")))
		if err := m.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		m2 := NewManager()
		n, err := m2.Load(root)
		if err != nil {
			t.Fatalf("reload error = %v", err)
		}
		if n != 1 {
			t.Fatalf("reload = %d entries, want 1", n)
		}
		e, ok := m2.GetEntry("domains/git/core.md")
		if !ok || e.Provenance != ToolManaged {
			t.Errorf("GetEntry() = %+v, %v", e, ok)
		}
	})

	t.Run("save without load fails", func(t *testing.T) {
		if err := NewManager().Save(); err == nil {
			t.Error("Save() error = nil, want error")
		}
	})

	t.Run("reload marks edited managed files user_modified", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "core.md")
		if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		m := NewManager()
		if _, err := m.Load(root); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		_ = m.Track("core.md", ToolManaged, HashBytes([]byte("original")))
		if err := m.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("edited by hand"), 0o644); err != nil {
			t.Fatalf("edit fixture: %v", err)
		}

		m2 := NewManager()
		if _, err := m2.Load(root); err != nil {
			t.Fatalf("reload error = %v", err)
		}
		e, ok := m2.GetEntry("core.md")
		if !ok {
			t.Fatal("GetEntry() not found after reload")
		}
		if e.Provenance != UserModified {
			t.Errorf("Provenance = %q, want %q", e.Provenance, UserModified)
		}
	})

	t.Run("reload keeps unchanged managed files tool_managed", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "core.md")
		if err := os.WriteFile(path, []byte("stable"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		m := NewManager()
		if _, err := m.Load(root); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		_ = m.Track("core.md", ToolManaged, HashBytes([]byte("stable")))
		if err := m.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		m2 := NewManager()
		if _, err := m2.Load(root); err != nil {
			t.Fatalf("reload error = %v", err)
		}
		e, _ := m2.GetEntry("core.md")
		if e.Provenance != ToolManaged {
			t.Errorf("Provenance = %q, want %q", e.Provenance, ToolManaged)
		}
	})

	t.Run("corrupt manifest is an error", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, defs.ManifestJSON)
		if err := os.WriteFile(path, []byte("{bad"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		if _, err := NewManager().Load(root); err == nil {
			t.Error("Load() error = nil, want parse error")
		}
	})
}

func TestHashBytes(t *testing.T) {
	h1 := HashBytes([]byte("hello"))
	h2 := HashBytes([]byte("hello"))
	h3 := HashBytes([]byte("world"))

	if h1 != h2 {
		t.Errorf("HashBytes not deterministic: %q vs %q", h1, h2)
	}
	if h1 == h3 {
		t.Error("HashBytes collision on different content")
	}
	if len(h1) != 64 {
		t.Errorf("len(hash) = %d, want 64 hex chars", len(h1))
	}
}
