package cli

import (
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todos/internal/script"
)

// stdinScriptArg makes run and validate read the script from stdin.
const stdinScriptArg = "-"

var scriptStdinFormat string

// loadScript loads the script named by arg, reading stdin when arg is "-".
func loadScript(cmd *cobra.Command, arg string) (*script.Script, error) {
	if arg != stdinScriptArg {
		return script.LoadFile(arg)
	}
	format, err := script.ParseFormat(scriptStdinFormat)
	if err != nil {
		return nil, err
	}
	return script.Read(cmd.InOrStdin(), format)
}

func addStdinFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scriptStdinFormat, "stdin-format", "yaml", "Script format when reading from stdin (yaml, toml, json)")
}
