package core

import "github.com/valter-silva-au/todos/pkg/models"

// ViewItem is one row of the derived view. Index is the task's position in
// the full collection, which is what Delete and ToggleCompleted expect.
type ViewItem struct {
	Index int
	Task  models.Task
}

// DeriveView returns the tasks matching mode in collection order. The
// result is a fresh slice. Unknown modes behave like FilterAll.
func DeriveView(tasks []models.Task, mode models.FilterMode) []models.Task {
	items := DeriveIndexedView(tasks, mode)
	view := make([]models.Task, len(items))
	for i, item := range items {
		view[i] = item.Task
	}
	return view
}

// DeriveIndexedView is DeriveView with each task's original index attached.
func DeriveIndexedView(tasks []models.Task, mode models.FilterMode) []ViewItem {
	items := make([]ViewItem, 0, len(tasks))
	for i, t := range tasks {
		if !matchesFilter(t, mode) {
			continue
		}
		items = append(items, ViewItem{Index: i, Task: t})
	}
	return items
}

// CountActive returns the number of tasks not yet completed.
func CountActive(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsCompleted {
			n++
		}
	}
	return n
}

func matchesFilter(t models.Task, mode models.FilterMode) bool {
	switch mode {
	case models.FilterActive:
		return !t.IsCompleted
	case models.FilterCompleted:
		return t.IsCompleted
	default:
		return true
	}
}
