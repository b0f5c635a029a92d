package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todos/internal/core"
	"github.com/valter-silva-au/todos/internal/script"
	"gopkg.in/yaml.v3"
)

var (
	runFormat string
	runAll    bool
)

type reportTask struct {
	Index       int    `yaml:"index" json:"index"`
	ID          string `yaml:"id" json:"id"`
	TaskName    string `yaml:"task_name" json:"task_name"`
	IsCompleted bool   `yaml:"is_completed" json:"is_completed"`
}

// runReport is the end state of a replayed script.
type runReport struct {
	Filter      string       `yaml:"filter" json:"filter"`
	Total       int          `yaml:"total" json:"total"`
	ActiveCount int          `yaml:"active_count" json:"active_count"`
	Applied     int          `yaml:"applied" json:"applied"`
	Ignored     int          `yaml:"ignored" json:"ignored"`
	Tasks       []reportTask `yaml:"tasks" json:"tasks"`
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Replay an intent script against a fresh task list",
	Long: `Replay an intent script (.yaml, .yml, .toml or .json) against a fresh task
list and print the resulting view.

The script is validated before anything is applied. Replay stops at the
first intent that fails, such as a delete or toggle with an index outside
the list, and reports its position. Adding a blank task is ignored.

By default only the tasks visible under the final filter are printed; use
--all to print the whole list. Pass - to read the script from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch runFormat {
		case "table", "yaml", "json":
		default:
			return fmt.Errorf("invalid --format %q: must be one of table, yaml, json", runFormat)
		}

		s, err := loadScript(cmd, args[0])
		if err != nil {
			return err
		}

		store, err := newSessionStore()
		if err != nil {
			return err
		}

		res, err := script.Replay(store, s.Intents)
		if err != nil {
			return fmt.Errorf("replaying %s: %w", args[0], err)
		}

		report := buildRunReport(store, res, runAll)
		return writeRunReport(cmd.OutOrStdout(), report, runFormat)
	},
}

func buildRunReport(store core.TaskStore, res script.Result, all bool) runReport {
	var items []core.ViewItem
	if all {
		items = core.DeriveIndexedView(store.Tasks(), "")
	} else {
		items = store.IndexedView()
	}

	report := runReport{
		Filter:      string(store.Filter()),
		Total:       store.Len(),
		ActiveCount: store.ActiveCount(),
		Applied:     res.Applied,
		Ignored:     res.Ignored,
		Tasks:       make([]reportTask, len(items)),
	}
	for i, item := range items {
		report.Tasks[i] = reportTask{
			Index:       item.Index,
			ID:          item.Task.ID,
			TaskName:    item.Task.TaskName,
			IsCompleted: item.Task.IsCompleted,
		}
	}
	return report
}

func writeRunReport(w io.Writer, report runReport, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting report as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("formatting report as YAML: %w", err)
		}
		return enc.Close()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "DONE", "TASK", "ID")
	for _, task := range report.Tasks {
		done := "[ ]"
		if task.IsCompleted {
			done = "[x]"
		}
		t.Row(strconv.Itoa(task.Index), done, task.TaskName, task.ID)
	}

	if len(report.Tasks) > 0 {
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "No tasks to show."); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s | filter: %s | %d of %d shown\n",
		itemsLeft(report.ActiveCount), report.Filter, len(report.Tasks), report.Total)
	return err
}

func init() {
	runCmd.Flags().StringVar(&runFormat, "format", "table", "Output format (table, yaml, json)")
	runCmd.Flags().BoolVar(&runAll, "all", false, "Print every task, not just the filtered view")
	addStdinFormatFlag(runCmd)
	rootCmd.AddCommand(runCmd)
}
