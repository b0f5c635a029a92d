package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script>",
	Short: "Check an intent script without replaying it",
	Long: `Parse an intent script (.yaml, .yml, .toml or .json) and check it against
the intent schema. Nothing is applied. Index bounds are only known during a
replay, so they are checked by 'todos run', not here. Pass - to read the
script from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScript(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d intents)\n", args[0], len(s.Intents))
		return nil
	},
}

func init() {
	addStdinFormatFlag(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
