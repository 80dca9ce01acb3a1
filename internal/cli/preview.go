package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/convkit/convkit/internal/registry"
	"github.com/convkit/convkit/internal/resolver"
)

var previewCmd = &cobra.Command{
	Use:   "preview <domain>",
	Short: "Preview a domain's conventions in the terminal",
	Long: `Render a domain's core conventions file as styled markdown.

Inheritance chains are flattened: a domain that extends others is shown
with its parents' content first, and shorthand references are expanded.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("registry", "", "Path to the domain registry document (default: auto-discover)")
	previewCmd.Flags().String("source", "", "Community domain source directory (default: registry directory)")
	previewCmd.Flags().Bool("raw", false, "Print plain markdown without terminal styling")
}

// runPreview flattens and renders one domain.
func runPreview(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	registryPath, err := resolveRegistryPath(getStringFlag(cmd, "registry"))
	if err != nil {
		return err
	}
	reg, err := registry.Load(registryPath)
	if err != nil {
		return err
	}
	if !reg.HasDomain(name) {
		return fmt.Errorf("%w: %q", registry.ErrDomainNotFound, name)
	}

	sourceDir := resolveSourceDir(getStringFlag(cmd, "source"), registryPath)
	res := resolver.New(os.DirFS(sourceDir))

	content, err := res.Resolve(name)
	if err != nil {
		return err
	}

	if getBoolFlag(cmd, "raw") || !isatty.IsTerminal(os.Stdout.Fd()) {
		_, _ = fmt.Fprintln(out, content)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return fmt.Errorf("render %q: %w", name, err)
	}
	_, _ = fmt.Fprint(out, rendered)
	return nil
}
