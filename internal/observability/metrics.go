package observability

import (
	"fmt"
	"time"
)

// Metrics summarises task-list activity recorded in the event log.
type Metrics struct {
	TasksAdded     int            `json:"tasks_added"`
	TasksCompleted int            `json:"tasks_completed"`
	TasksReopened  int            `json:"tasks_reopened"`
	TasksDeleted   int            `json:"tasks_deleted"`
	TasksCleared   int            `json:"tasks_cleared"`
	FilterChanges  map[string]int `json:"filter_changes"`
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from eventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate aggregates every event at or after since.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		FilterChanges: make(map[string]int),
		EventCount:    len(events),
	}

	for i, event := range events {
		t := event.Time
		if i == 0 {
			m.OldestEvent = &t
		}
		m.NewestEvent = &t

		switch event.Type {
		case "task.added":
			m.TasksAdded++
		case "task.toggled":
			if completed, _ := event.Data["completed"].(bool); completed {
				m.TasksCompleted++
			} else {
				m.TasksReopened++
			}
		case "task.deleted":
			m.TasksDeleted++
		case "tasks.cleared":
			// JSON numbers decode as float64.
			if removed, ok := event.Data["removed"].(float64); ok {
				m.TasksCleared += int(removed)
			}
		case "filter.changed":
			if filter, ok := event.Data["filter"].(string); ok {
				m.FilterChanges[filter]++
			}
		}
	}

	return m, nil
}
