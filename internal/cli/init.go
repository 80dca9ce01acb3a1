package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/convkit/convkit/internal/config"
	"github.com/convkit/convkit/internal/manifest"
	"github.com/convkit/convkit/internal/materialize"
	"github.com/convkit/convkit/internal/registry"
	"github.com/convkit/convkit/internal/selector"
	"github.com/convkit/convkit/internal/ui"
	"github.com/convkit/convkit/pkg/version"
)

var initCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Generate a new conventions project",
	Long: `Generate a new AI conventions project.

Usage patterns:
  convkit init <project-dir>   Create a new folder and generate inside it
  convkit init .               Generate in the current directory
  convkit init                 Generate in the current directory

When run on a terminal, an interactive selection walks you through domains,
providers, features, and the configuration format. With --non-interactive,
registry defaults and flag values are used instead.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateInitFlags,
	RunE:    runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("registry", "", "Path to the domain registry document (default: auto-discover)")
	initCmd.Flags().String("source", "", "Community domain source directory (default: registry directory)")
	initCmd.Flags().String("name", "", "Project name (default: directory name)")
	initCmd.Flags().String("author", "", "Author display name")
	initCmd.Flags().String("email", "", "Author email")
	initCmd.Flags().StringSlice("domains", nil, "Convention domains to include (default: registry defaults)")
	initCmd.Flags().StringSlice("providers", nil, "AI tool providers to wire up (default: none)")
	initCmd.Flags().String("format", "yaml", "Configuration record format: yaml, toml, or json")
	initCmd.Flags().Bool("learning-capture", true, "Include learning capture commands and staging area")
	initCmd.Flags().Bool("context-canary", true, "Include the context canary document")
	initCmd.Flags().Bool("domain-composition", true, "Enable domain inheritance and shorthand references")
	initCmd.Flags().Bool("non-interactive", false, "Skip the interactive selection; use flags and defaults")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getSliceFlag retrieves a string slice flag value from the command.
func getSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

// validateInitFlags validates flag values before execution.
func validateInitFlags(cmd *cobra.Command, _ []string) error {
	if _, err := config.ParseFormat(getStringFlag(cmd, "format")); err != nil {
		return fmt.Errorf("invalid --format value: %w", err)
	}
	return nil
}

// runInit executes the generation pipeline: load registry, select, materialize.
func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	projectRoot, projectName, err := resolveProjectRoot(cmd, args)
	if err != nil {
		return err
	}

	registryPath, err := resolveRegistryPath(getStringFlag(cmd, "registry"))
	if err != nil {
		return err
	}
	sourceDir := resolveSourceDir(getStringFlag(cmd, "source"), registryPath)

	nonInteractive := getBoolFlag(cmd, "non-interactive")
	theme := ui.DefaultTheme()
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(nonInteractive || !isatty.IsTerminal(os.Stdin.Fd()))
	prog := ui.NewProgressWithWriter(theme, hm, out)

	sp := prog.Spinner("Loading registry")
	reg, err := registry.Load(registryPath)
	sp.Stop()
	if err != nil {
		return err
	}

	format, _ := config.ParseFormat(getStringFlag(cmd, "format"))
	opts := selector.HeadlessOptions{
		ProjectName: projectName,
		AuthorName:  getStringFlag(cmd, "author"),
		AuthorEmail: getStringFlag(cmd, "email"),
		Domains:     getSliceFlag(cmd, "domains"),
		Providers:   getSliceFlag(cmd, "providers"),
		Format:      format,
		Features: config.Features{
			LearningCapture:   getBoolFlag(cmd, "learning-capture"),
			ContextCanary:     getBoolFlag(cmd, "context-canary"),
			DomainComposition: getBoolFlag(cmd, "domain-composition"),
		},
	}

	var sel selector.Selector
	if hm.IsHeadless() {
		sel = selector.NewHeadless(opts, slog.Default())
	} else {
		_, _ = fmt.Fprintln(out, printBanner(version.GetVersion()))
		_, _ = fmt.Fprintln(out)
		sel = selector.NewInteractive(theme, opts)
	}

	result, err := sel.Select(reg)
	if err != nil {
		if errors.Is(err, selector.ErrCancelled) {
			_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Generation cancelled.")
			return nil
		}
		return err
	}
	if result.ProjectName == "" {
		result.ProjectName = filepath.Base(projectRoot)
	}

	mfst := manifest.NewManager()
	mat := materialize.New(os.DirFS(sourceDir), reg, mfst, slog.Default())
	mat.SetProgress(prog)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, _ = fmt.Fprintln(out, "Generating conventions project...")

	matResult, err := mat.Run(ctx, result, projectRoot)
	if err != nil {
		return err
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Domains", strings.Join(result.Selection.Domains, ", ")},
			{"Providers", providersLabel(result.Selection.Providers)},
			{"Files", fmt.Sprintf("%d copied", len(matResult.CopiedFiles))},
			{"Pruned", fmt.Sprintf("%d paths", len(matResult.PrunedPaths))},
			{"Record", matResult.RecordPath},
		}),
	}
	for _, w := range matResult.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Conventions project generated", details...))
	return nil
}

// resolveProjectRoot determines the destination directory from the
// positional argument, creating it when a new name is given.
func resolveProjectRoot(cmd *cobra.Command, args []string) (root, name string, err error) {
	name = getStringFlag(cmd, "name")

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("get working directory: %w", err)
	}

	if len(args) == 0 || args[0] == "." {
		return cwd, name, nil
	}

	target := args[0]
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", fmt.Errorf("resolve project path %q: %w", target, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", "", fmt.Errorf("create project directory %q: %w", target, err)
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	return abs, name, nil
}

// providersLabel formats the provider list for the success card.
func providersLabel(providers []string) string {
	if len(providers) == 0 {
		return "none"
	}
	return strings.Join(providers, ", ")
}
