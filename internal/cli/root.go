package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convkit/convkit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "convkit",
	Short: "convkit: scaffold AI coding convention projects",
	Long: `convkit scaffolds a documentation repository of AI coding conventions:
markdown convention documents that assistants like Claude, Cursor, Windsurf,
Aider, Copilot, and Codex load as context.

It loads a community domain registry, lets you pick convention domains and
tool providers, copies the selected domains into your project, prunes the
files of providers you did not choose, and records the whole selection in a
configuration file.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("convkit %s\n", version.GetVersion()))
}
