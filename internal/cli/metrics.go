package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todos/internal/observability"
)

var (
	metricsFormat string
	metricsSince  string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display task list metrics",
	Long: `Display aggregated metrics derived from the event log.

Metrics include how many tasks were added, completed, reopened, deleted and
cleared, and how often each filter was selected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (event log may be disabled)")
		}

		switch metricsFormat {
		case "table", "json":
		default:
			return fmt.Errorf("invalid --format %q: must be one of table, json", metricsFormat)
		}

		sinceTime, err := observability.ParseSince(metricsSince, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if metricsFormat == "json" {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Metrics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-24s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks added:", metrics.TasksAdded)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks completed:", metrics.TasksCompleted)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks reopened:", metrics.TasksReopened)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks deleted:", metrics.TasksDeleted)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks cleared:", metrics.TasksCleared)

		if len(metrics.FilterChanges) > 0 {
			fmt.Fprintln(out, "\n  Filter changes:")
			modes := make([]string, 0, len(metrics.FilterChanges))
			for mode := range metrics.FilterChanges {
				modes = append(modes, mode)
			}
			sort.Strings(modes)
			for _, mode := range modes {
				fmt.Fprintf(out, "    %-20s %d\n", mode+":", metrics.FilterChanges[mode])
			}
		}

		if metrics.OldestEvent != nil {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
		}
		if metrics.NewestEvent != nil {
			fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsFormat, "format", "table", "Output format (table, json)")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
