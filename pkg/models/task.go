package models

import (
	"fmt"
	"strings"
)

// FilterMode selects which tasks appear in the derived view.
type FilterMode string

const (
	FilterAll       FilterMode = "All"
	FilterActive    FilterMode = "Active"
	FilterCompleted FilterMode = "Completed"
)

// FilterModes returns every filter mode in footer display order.
func FilterModes() []FilterMode {
	return []FilterMode{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilterMode converts a user-supplied string into a FilterMode.
// Matching is case-insensitive; surrounding whitespace is ignored.
func ParseFilterMode(s string) (FilterMode, error) {
	trimmed := strings.TrimSpace(s)
	for _, mode := range FilterModes() {
		if strings.EqualFold(trimmed, string(mode)) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("invalid filter %q: must be one of All, Active, Completed", s)
}

// Task is one user-entered to-do item. ID and TaskName are fixed at
// creation; only IsCompleted changes afterwards.
type Task struct {
	ID          string `yaml:"id" json:"id"`
	TaskName    string `yaml:"task_name" json:"task_name"`
	IsCompleted bool   `yaml:"is_completed" json:"is_completed"`
}
