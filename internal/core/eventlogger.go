package core

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// NewChangeLogger returns a ChangeListener that records every store change
// through logger. Write failures are dropped; the event log never blocks
// a mutation.
func NewChangeLogger(logger EventLogger) ChangeListener {
	return func(c Change) {
		if logger == nil {
			return
		}
		data := map[string]any{
			"filter": string(c.Filter),
			"total":  c.Total,
			"active": c.Active,
		}
		if c.Task != nil {
			data["task_id"] = c.Task.ID
			data["index"] = c.Index
			data["completed"] = c.Task.IsCompleted
		}
		if c.Kind == ChangeTasksCleared {
			data["removed"] = c.Removed
		}
		_ = logger.LogEvent(string(c.Kind), data)
	}
}
