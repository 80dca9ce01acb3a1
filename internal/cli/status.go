package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/convkit/convkit/internal/config"
	"github.com/convkit/convkit/internal/manifest"
)

var statusCmd = &cobra.Command{
	Use:   "status [project-dir]",
	Short: "Show the conventions recorded in a generated project",
	Long: `Report the selection recorded in a generated conventions project:
domains, providers, feature toggles, and the configuration format,
along with a summary of the tracked file provenance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus locates and prints the configuration record.
func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if len(args) == 1 && args[0] != "." {
		root, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve project path %q: %w", args[0], err)
		}
	}

	rec, format, err := config.FindRecord(root)
	if err != nil {
		if errors.Is(err, config.ErrRecordNotFound) {
			_, _ = fmt.Fprintln(out, cliMuted.Render(
				fmt.Sprintf("No conventions record found in %s", root)))
			_, _ = fmt.Fprintln(out, cliMuted.Render("Run `convkit init` to generate one."))
			return nil
		}
		return err
	}

	features := rec.Features.EnabledNames()
	featuresLabel := "none"
	if len(features) > 0 {
		featuresLabel = strings.Join(features, ", ")
	}

	pairs := []kvPair{
		{"Project", rec.ProjectName},
		{"Author", rec.AuthorName},
		{"Domains", strings.Join(rec.Domains, ", ")},
		{"Providers", providersLabel(rec.Providers)},
		{"Features", featuresLabel},
		{"Format", string(format)},
		{"Generated", rec.GeneratedAt},
		{"Tool", rec.ToolVersion},
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Render("Conventions project"))
	_, _ = fmt.Fprintln(out, renderKeyValueLines(pairs))

	if line := manifestSummary(root); line != "" {
		_, _ = fmt.Fprintln(out, cliMuted.Render(line))
	}
	return nil
}

// manifestSummary counts tracked files per provenance, if a manifest exists.
func manifestSummary(root string) string {
	mfst := manifest.NewManager()
	n, err := mfst.Load(root)
	if err != nil || n == 0 {
		return ""
	}

	counts := map[manifest.Provenance]int{}
	for _, e := range mfst.Entries() {
		counts[e.Provenance]++
	}

	return fmt.Sprintf("%d tracked files (%d managed, %d modified, %d operator-created)",
		n, counts[manifest.ToolManaged], counts[manifest.UserModified], counts[manifest.UserCreated])
}
