package materialize

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/convkit/convkit/internal/config"
	"github.com/convkit/convkit/internal/defs"
	"github.com/convkit/convkit/internal/manifest"
	"github.com/convkit/convkit/internal/registry"
	"github.com/convkit/convkit/internal/resolver"
	"github.com/convkit/convkit/internal/selector"
	"github.com/convkit/convkit/internal/ui"
	"github.com/convkit/convkit/pkg/version"
)

// Result summarizes one materialization run.
type Result struct {
	CopiedFiles []string // Project-relative paths of copied domain files.
	PrunedPaths []string // Project-relative paths removed by pruning.
	RemovedDirs []string // Directories removed by empty-dir cleanup.
	RecordPath  string   // Absolute path of the written configuration record.
	Warnings    []string // Non-fatal problems; generation still succeeded.
}

// Materializer applies a Selection to a generated project tree.
// Domain sources are read through an fs.FS so tests can inject a
// fstest.MapFS in place of the community source tree.
type Materializer struct {
	source   fs.FS
	reg      *registry.Registry
	mfst     manifest.Manager
	logger   *slog.Logger
	progress ui.Progress
	now      func() time.Time
}

// New creates a Materializer reading domain files from source.
func New(source fs.FS, reg *registry.Registry, mfst manifest.Manager, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Materializer{
		source: source,
		reg:    reg,
		mfst:   mfst,
		logger: logger,
		now:    time.Now,
	}
}

// SetProgress wires a progress reporter for the copy phase.
func (m *Materializer) SetProgress(p ui.Progress) {
	m.progress = p
}

// Run leaves the project tree in a state that reflects exactly the given
// selection and writes the configuration record as the final step.
// Copy failures are fatal; pruning and cleanup failures are warnings.
func (m *Materializer) Run(ctx context.Context, sel *selector.Result, projectRoot string) (*Result, error) {
	projectRoot = filepath.Clean(projectRoot)
	result := &Result{}
	result.Warnings = append(result.Warnings, sel.Warnings...)

	m.logger.Info("materializing project",
		"root", projectRoot,
		"domains", sel.Selection.Domains,
		"providers", sel.Selection.Providers,
	)

	if m.mfst != nil {
		if _, err := m.mfst.Load(projectRoot); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("manifest load: %v", err))
			m.logger.Warn("manifest load failed", "error", err)
		}
	}

	// Phase 1: copy selected domains. Fatal on failure.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	copied, copyWarns, err := m.CopyDomains(ctx, sel.Selection, projectRoot)
	if err != nil {
		return nil, err
	}
	result.CopiedFiles = copied
	result.Warnings = append(result.Warnings, copyWarns...)

	// Phase 2: prune unselected providers and disabled features.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pruned, warns := m.PruneUnselected(sel.Selection, projectRoot)
	result.PrunedPaths = pruned
	result.Warnings = append(result.Warnings, warns...)

	// Phase 3: remove directories left empty by pruning.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	removed, warns := m.CleanupEmptyDirs(projectRoot)
	result.RemovedDirs = removed
	result.Warnings = append(result.Warnings, warns...)

	// Phase 4: persist the manifest and write the record. The record is
	// always last so it reflects the final tree state.
	if m.mfst != nil {
		if err := m.mfst.Save(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("manifest save: %v", err))
			m.logger.Warn("manifest save failed", "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recordPath, err := m.writeRecord(sel, projectRoot)
	if err != nil {
		return nil, err
	}
	result.RecordPath = recordPath

	return result, nil
}

// CopyDomains copies every file of every selected domain from the source
// tree into <projectRoot>/domains/<name>/. Tool-managed files are
// overwritten in place on reruns; files the operator created or edited
// (per the manifest provenance) are kept, with a warning. A missing
// source file aborts with a DomainCopyError naming the domain and file,
// and the partially copied domain directory is removed.
func (m *Materializer) CopyDomains(ctx context.Context, sel selector.Selection, projectRoot string) (copied, warnings []string, err error) {
	var bar ui.ProgressBar
	if m.progress != nil {
		bar = m.progress.Start("Copying domains", len(sel.Domains))
		defer bar.Done()
	}

	for _, name := range sel.Domains {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		domain, ok := m.reg.Domain(name)
		if !ok {
			return nil, nil, &DomainCopyError{Domain: name, Err: registry.ErrDomainNotFound}
		}

		files, warns, err := m.copyDomain(domain, sel, projectRoot)
		if err != nil {
			// Do not leave a half-copied domain behind the failure.
			destDir := filepath.Join(projectRoot, defs.DomainsDir, name)
			if rmErr := os.RemoveAll(destDir); rmErr != nil {
				m.logger.Warn("failed to remove partial domain dir", "dir", destDir, "error", rmErr)
			}
			return nil, nil, err
		}
		copied = append(copied, files...)
		warnings = append(warnings, warns...)

		if bar != nil {
			bar.SetTitle(name)
			bar.Increment(1)
		}
		m.logger.Info("domain copied", "domain", name, "files", len(files))
	}

	return copied, warnings, nil
}

// copyDomain copies one domain's registry-listed files, consulting the
// manifest so operator-owned files are not clobbered.
func (m *Materializer) copyDomain(domain registry.Domain, sel selector.Selection, projectRoot string) (written, warnings []string, err error) {
	for _, file := range domain.Files {
		srcPath := filepath.ToSlash(filepath.Join(domain.Name, file))
		content, err := fs.ReadFile(m.source, srcPath)
		if err != nil {
			return nil, nil, &DomainCopyError{Domain: domain.Name, File: file, Err: err}
		}

		// With domain composition on, shorthand references like
		// %testing%unit-tests are rewritten to concrete @domains paths.
		if sel.Features.DomainComposition && strings.HasSuffix(file, ".md") {
			content = []byte(resolver.ResolveShorthand(string(content)))
		}

		relPath := filepath.Join(defs.DomainsDir, domain.Name, file)
		if err := validateDestPath(projectRoot, relPath); err != nil {
			return nil, nil, &DomainCopyError{Domain: domain.Name, File: file, Err: err}
		}
		relSlash := filepath.ToSlash(relPath)
		destPath := filepath.Join(projectRoot, relPath)

		if m.mfst != nil {
			if entry, ok := m.mfst.GetEntry(relPath); ok && entry.Provenance != manifest.ToolManaged {
				warnings = append(warnings, fmt.Sprintf("kept %s (%s)", relSlash, entry.Provenance))
				m.logger.Info("keeping operator-owned file", "path", relSlash, "provenance", entry.Provenance)
				continue
			} else if !ok {
				if existing, readErr := os.ReadFile(destPath); readErr == nil {
					if trackErr := m.mfst.Track(relPath, manifest.UserCreated, manifest.HashBytes(existing)); trackErr != nil {
						m.logger.Warn("manifest track failed", "path", relSlash, "error", trackErr)
					}
					warnings = append(warnings, fmt.Sprintf("kept existing %s", relSlash))
					m.logger.Info("keeping operator-created file", "path", relSlash)
					continue
				}
			}
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return nil, nil, &DomainCopyError{Domain: domain.Name, File: file, Err: err}
		}
		if err := os.WriteFile(destPath, content, 0o644); err != nil {
			return nil, nil, &DomainCopyError{Domain: domain.Name, File: file, Err: err}
		}

		if m.mfst != nil {
			if err := m.mfst.Track(relPath, manifest.ToolManaged, manifest.HashBytes(content)); err != nil {
				m.logger.Warn("manifest track failed", "path", relPath, "error", err)
			}
		}
		written = append(written, relSlash)
	}

	return written, warnings, nil
}

// PruneUnselected deletes the owned paths of every registry provider the
// selection does not include, plus feature paths whose toggle is off.
// Deletions are independent and commutative; missing paths are treated
// as already satisfied. Failures are returned as warnings, not errors.
func (m *Materializer) PruneUnselected(sel selector.Selection, projectRoot string) (pruned, warnings []string) {
	var targets []string

	for _, p := range m.reg.Providers {
		if slices.Contains(sel.Providers, p.Name) {
			// Selected providers still lose their conditional paths for
			// disabled features.
			targets = append(targets, conditionalPathsOff(p, sel.Features)...)
			continue
		}
		targets = append(targets, p.AllPaths()...)
	}

	if !sel.Features.LearningCapture {
		targets = append(targets, defs.LearningCapturePaths...)
	}
	if !sel.Features.ContextCanary {
		targets = append(targets, defs.ContextCanaryPaths...)
	}

	for _, rel := range targets {
		rel = strings.TrimSuffix(rel, "/")
		if err := validateDestPath(projectRoot, rel); err != nil {
			warnings = append(warnings, fmt.Sprintf("prune %q: %v", rel, err))
			continue
		}

		abs := filepath.Join(projectRoot, filepath.FromSlash(rel))
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(abs); err != nil {
			warnings = append(warnings, fmt.Sprintf("prune %q: %v", rel, err))
			m.logger.Warn("prune failed", "path", rel, "error", err)
			continue
		}
		pruned = append(pruned, filepath.ToSlash(rel))
	}

	sort.Strings(pruned)
	return pruned, warnings
}

// conditionalPathsOff returns a provider's conditional paths whose
// feature toggle is off.
func conditionalPathsOff(p registry.Provider, feats config.Features) []string {
	enabled := feats.EnabledNames()

	var out []string
	for feat, paths := range p.ConditionalPaths {
		if !slices.Contains(enabled, feat) {
			out = append(out, paths...)
		}
	}
	return out
}

// CleanupEmptyDirs walks the project tree bottom-up and removes any
// directory left without files. Purely cosmetic; failures are warnings.
func (m *Materializer) CleanupEmptyDirs(projectRoot string) (removed, warnings []string) {
	var dirs []string

	err := filepath.WalkDir(projectRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are cleanup warnings at most
		}
		if d.IsDir() && path != projectRoot {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("cleanup walk: %v", err))
		return nil, warnings
	}

	// Deepest first so nested empty directories collapse upward.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cleanup %q: %v", dir, err))
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			warnings = append(warnings, fmt.Sprintf("cleanup %q: %v", dir, err))
			m.logger.Warn("cleanup failed", "dir", dir, "error", err)
			continue
		}
		rel, relErr := filepath.Rel(projectRoot, dir)
		if relErr != nil {
			rel = dir
		}
		removed = append(removed, filepath.ToSlash(rel))
	}

	return removed, warnings
}

// writeRecord snapshots the selection into the configuration record.
// Selection metadata overrides the record defaults field by field.
func (m *Materializer) writeRecord(sel *selector.Result, projectRoot string) (string, error) {
	rec := config.NewDefaultRecord()
	rec.ProjectSlug = ""
	if sel.ProjectName != "" {
		rec.ProjectName = sel.ProjectName
	}
	if sel.AuthorName != "" {
		rec.AuthorName = sel.AuthorName
	}
	rec.AuthorEmail = sel.AuthorEmail
	rec.Domains = sel.Selection.Domains
	rec.Providers = sel.Selection.Providers
	rec.Features = sel.Selection.Features
	rec.ToolVersion = version.GetVersion()
	rec.GeneratedAt = m.now().UTC().Format(time.RFC3339)

	path, err := config.WriteRecord(rec, projectRoot, sel.Format)
	if err != nil {
		return "", fmt.Errorf("write config record: %w", err)
	}
	return path, nil
}

// validateDestPath ensures a project-relative path stays inside projectRoot
// and never names the root itself.
func validateDestPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}
	if cleaned == "." {
		return fmt.Errorf("%w: %q resolves to the project root", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	abs := filepath.Join(absRoot, cleaned)
	if !strings.HasPrefix(abs, absRoot+string(filepath.Separator)) && abs != absRoot {
		return fmt.Errorf("%w: %q", ErrPathTraversal, relPath)
	}
	return nil
}
