package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/convkit/convkit/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry domains and providers",
	Long: `List every convention domain and AI tool provider the registry defines,
with default-domain markers and provider capability summaries.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("registry", "", "Path to the domain registry document (default: auto-discover)")
}

// titleCaser renders registry names for display.
var titleCaser = cases.Title(language.English)

// runList prints the registry contents.
func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	registryPath, err := resolveRegistryPath(getStringFlag(cmd, "registry"))
	if err != nil {
		return err
	}
	reg, err := registry.Load(registryPath)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Render("Domains"))
	if len(reg.Domains) == 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("  (none)"))
	}
	for _, d := range reg.Domains {
		marker := " "
		if d.Default {
			marker = cliSuccess.Render("*")
		}
		line := fmt.Sprintf("  %s %-14s %s", marker, d.Name, cliMuted.Render(d.Description))
		if len(d.Files) > 0 {
			line += cliMuted.Render(fmt.Sprintf(" (%d files)", len(d.Files)))
		}
		_, _ = fmt.Fprintln(out, line)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, cliPrimary.Render("Providers"))
	if len(reg.Providers) == 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("  (none)"))
	}
	for _, p := range reg.Providers {
		_, _ = fmt.Fprintf(out, "    %-14s %s\n",
			titleCaser.String(p.Name),
			cliMuted.Render(capabilitySummary(p.Capabilities)))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, cliMuted.Render("* default domain"))
	return nil
}

// capabilitySummary renders a short capability description.
func capabilitySummary(c registry.Capabilities) string {
	var parts []string
	if c.SupportsImports {
		parts = append(parts, "imports")
	}
	if c.SupportsCommands {
		parts = append(parts, "commands")
	}
	if c.Symlinks {
		parts = append(parts, "symlinks")
	}
	if c.MaxContextTokens > 0 {
		parts = append(parts, fmt.Sprintf("%dk context", c.MaxContextTokens/1000))
	}
	if len(parts) == 0 {
		return "no declared capabilities"
	}
	return strings.Join(parts, ", ")
}
