package observability

import (
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// For any mix of events, the per-kind counters agree with what was written
// and EventCount is the total.
func TestProperty_MetricsMatchWrittenEvents(t *testing.T) {
	kinds := []string{"task.added", "task.toggled", "task.deleted", "tasks.cleared", "filter.changed", "unknown.kind"}

	rapid.Check(t, func(rt *rapid.T) {
		el, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
		if err != nil {
			rt.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		want := Metrics{FilterChanges: map[string]int{}}

		for i := 0; i < n; i++ {
			kind := rapid.SampledFrom(kinds).Draw(rt, "kind")
			data := map[string]any{}
			switch kind {
			case "task.added":
				want.TasksAdded++
			case "task.toggled":
				completed := rapid.Bool().Draw(rt, "completed")
				data["completed"] = completed
				if completed {
					want.TasksCompleted++
				} else {
					want.TasksReopened++
				}
			case "task.deleted":
				want.TasksDeleted++
			case "tasks.cleared":
				removed := rapid.IntRange(0, 5).Draw(rt, "removed")
				data["removed"] = removed
				want.TasksCleared += removed
			case "filter.changed":
				filter := rapid.SampledFrom([]string{"All", "Active", "Completed"}).Draw(rt, "filter")
				data["filter"] = filter
				want.FilterChanges[filter]++
			}
			if err := el.Write(Event{Time: base.Add(time.Duration(i) * time.Second), Type: kind, Data: data}); err != nil {
				rt.Fatalf("writing event: %v", err)
			}
		}

		got, err := NewMetricsCalculator(el).Calculate(base)
		if err != nil {
			rt.Fatalf("calculating metrics: %v", err)
		}
		if got.EventCount != n {
			rt.Errorf("EventCount = %d, want %d", got.EventCount, n)
		}
		if got.TasksAdded != want.TasksAdded || got.TasksCompleted != want.TasksCompleted ||
			got.TasksReopened != want.TasksReopened || got.TasksDeleted != want.TasksDeleted ||
			got.TasksCleared != want.TasksCleared {
			rt.Errorf("metrics = %+v, want %+v", got, want)
		}
		for filter, count := range want.FilterChanges {
			if got.FilterChanges[filter] != count {
				rt.Errorf("FilterChanges[%s] = %d, want %d", filter, got.FilterChanges[filter], count)
			}
		}
	})
}
