package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionInstall bool

// completionShell describes how to generate and install completions for one
// shell. installDir is relative to the user's home; empty means --install is
// unsupported.
type completionShell struct {
	generate   func(w io.Writer) error
	loadHint   string
	installDir []string
	fileName   string
}

var completionShells = map[string]completionShell{
	"bash": {
		generate:   func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
		loadHint:   `eval "$(todos completion bash)"`,
		installDir: []string{".local", "share", "bash-completion", "completions"},
		fileName:   "todos",
	},
	"zsh": {
		generate:   func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
		loadHint:   `eval "$(todos completion zsh)"`,
		installDir: []string{".local", "share", "zsh", "site-functions"},
		fileName:   "_todos",
	},
	"fish": {
		generate:   func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
		loadHint:   "todos completion fish | source",
		installDir: []string{".config", "fish", "completions"},
		fileName:   "todos.fish",
	},
	"powershell": {
		generate: func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
		loadHint: "todos completion powershell | Out-String | Invoke-Expression",
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for todos",
	Long: `Set up shell tab-completions for todos commands and flags.

Supported shells: bash, zsh, fish, powershell

Quick install (adds completions to a user-local completion directory):

  todos completion bash --install
  todos completion zsh --install
  todos completion fish --install

Or print the completion script to stdout (for manual setup):

  todos completion bash
  todos completion powershell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into a user-local completion directory")

	// Remove Cobra's default completion command and add ours.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	shell, ok := completionShells[args[0]]
	if !ok {
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", args[0])
	}

	if completionInstall {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("detecting home directory: %w", err)
		}
		target, err := installCompletion(home, args[0], shell)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s completions installed to %s\n", args[0], target)
		return nil
	}

	// Hints go to stderr so piping the script from stdout keeps working.
	fmt.Fprintf(cmd.ErrOrStderr(), "# To load completions in your current session:\n#   %s\n", shell.loadHint)
	return shell.generate(cmd.OutOrStdout())
}

// installCompletion writes the completion script under home and returns the
// file it wrote.
func installCompletion(home, name string, shell completionShell) (string, error) {
	if len(shell.installDir) == 0 {
		return "", fmt.Errorf("automatic install is not supported for %s; run 'todos completion %s' and add the output to your profile", name, name)
	}

	dir := filepath.Join(append([]string{home}, shell.installDir...)...)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating completion directory: %w", err)
	}
	target := filepath.Join(dir, shell.fileName)

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating completion file %s: %w", target, err)
	}
	writeErr := shell.generate(f)
	closeErr := f.Close()
	if writeErr != nil {
		return "", writeErr
	}
	if closeErr != nil {
		return "", fmt.Errorf("closing completion file %s: %w", target, closeErr)
	}
	return target, nil
}
