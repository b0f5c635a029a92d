package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "todos",
	Short: "todos - a terminal task list",
	Long: `todos is a small task-list manager: add short text tasks, mark them
completed, delete them, and filter the list by All, Active, or Completed.

Run without a subcommand to open the interactive list. The same intents can
be replayed from a YAML, TOML, or JSON script with 'todos run', or driven
by an assistant over MCP with 'todos mcp serve'.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "todos %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
