package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/valter-silva-au/todos/pkg/models"
)

var (
	// ErrIndexOutOfRange is returned when a mutation targets a position
	// outside the collection. The collection is left untouched.
	ErrIndexOutOfRange = errors.New("task index out of range")

	// ErrTaskNotFound is returned by the ID-based mutations.
	ErrTaskNotFound = errors.New("task not found")
)

// ChangeKind names a store mutation. The values double as event log types.
type ChangeKind string

const (
	ChangeTaskAdded     ChangeKind = "task.added"
	ChangeTaskDeleted   ChangeKind = "task.deleted"
	ChangeTaskToggled   ChangeKind = "task.toggled"
	ChangeTasksCleared  ChangeKind = "tasks.cleared"
	ChangeFilterChanged ChangeKind = "filter.changed"
)

// Change describes a completed mutation. Task is set for add, delete and
// toggle; Removed for clear; Total, Active and Filter always reflect the
// state after the mutation.
type Change struct {
	Kind    ChangeKind
	Index   int
	Task    *models.Task
	Removed int
	Filter  models.FilterMode
	Total   int
	Active  int
}

// ChangeListener is notified synchronously after each successful mutation.
type ChangeListener func(Change)

// TaskStore owns the task collection and the current filter mode.
type TaskStore interface {
	Add(taskName string) bool
	Delete(index int) error
	DeleteByID(id string) error
	ToggleCompleted(index int, value bool) error
	ToggleCompletedByID(id string, value bool) error
	ClearCompleted() int
	SetFilter(mode models.FilterMode)

	Tasks() []models.Task
	Filter() models.FilterMode
	View() []models.Task
	IndexedView() []ViewItem
	ActiveCount() int
	Len() int

	Subscribe(listener ChangeListener)
}

type memoryTaskStore struct {
	mu        sync.Mutex
	idGen     TaskIDGenerator
	tasks     []models.Task
	filter    models.FilterMode
	listeners []ChangeListener
}

// NewTaskStore creates an empty TaskStore. An empty initialFilter means
// FilterAll. idGen may be nil, in which case the default UUID generator is
// used.
func NewTaskStore(idGen TaskIDGenerator, initialFilter models.FilterMode) TaskStore {
	if idGen == nil {
		idGen = NewTaskIDGenerator(nil)
	}
	if initialFilter == "" {
		initialFilter = models.FilterAll
	}
	return &memoryTaskStore{
		idGen:  idGen,
		filter: initialFilter,
	}
}

// Add appends a new, not-yet-completed task. Names that are empty after
// trimming are ignored and Add reports false. The stored name keeps any
// surrounding whitespace the caller supplied.
func (s *memoryTaskStore) Add(taskName string) bool {
	if strings.TrimSpace(taskName) == "" {
		return false
	}

	s.mu.Lock()
	task := models.Task{
		ID:       s.idGen.GenerateID(),
		TaskName: taskName,
	}
	s.tasks = append(s.tasks, task)
	change := s.changeLocked(ChangeTaskAdded, len(s.tasks)-1, &task)
	s.mu.Unlock()

	s.notify(change)
	return true
}

// Delete removes the task at index; later tasks shift down by one.
func (s *memoryTaskStore) Delete(index int) error {
	s.mu.Lock()
	if err := s.checkIndexLocked(index); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("deleting task: %w", err)
	}
	change := s.deleteLocked(index)
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// DeleteByID removes the task with the given ID.
func (s *memoryTaskStore) DeleteByID(id string) error {
	s.mu.Lock()
	index := s.indexOfLocked(id)
	if index < 0 {
		s.mu.Unlock()
		return fmt.Errorf("deleting task %s: %w", id, ErrTaskNotFound)
	}
	change := s.deleteLocked(index)
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// ToggleCompleted sets the completion flag of the task at index to value.
func (s *memoryTaskStore) ToggleCompleted(index int, value bool) error {
	s.mu.Lock()
	if err := s.checkIndexLocked(index); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("toggling task: %w", err)
	}
	change := s.toggleLocked(index, value)
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// ToggleCompletedByID sets the completion flag of the task with the given ID.
func (s *memoryTaskStore) ToggleCompletedByID(id string, value bool) error {
	s.mu.Lock()
	index := s.indexOfLocked(id)
	if index < 0 {
		s.mu.Unlock()
		return fmt.Errorf("toggling task %s: %w", id, ErrTaskNotFound)
	}
	change := s.toggleLocked(index, value)
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// ClearCompleted drops every completed task, keeping the relative order of
// the rest, and returns how many were removed.
func (s *memoryTaskStore) ClearCompleted() int {
	s.mu.Lock()
	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.IsCompleted {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	change := s.changeLocked(ChangeTasksCleared, -1, nil)
	change.Removed = removed
	s.mu.Unlock()

	s.notify(change)
	return removed
}

// SetFilter replaces the current filter mode.
func (s *memoryTaskStore) SetFilter(mode models.FilterMode) {
	s.mu.Lock()
	s.filter = mode
	change := s.changeLocked(ChangeFilterChanged, -1, nil)
	s.mu.Unlock()

	s.notify(change)
}

// Tasks returns a copy of the full collection.
func (s *memoryTaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *memoryTaskStore) Filter() models.FilterMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// View returns the derived view for the current filter mode.
func (s *memoryTaskStore) View() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeriveView(s.tasks, s.filter)
}

// IndexedView returns the derived view with original collection indexes.
func (s *memoryTaskStore) IndexedView() []ViewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeriveIndexedView(s.tasks, s.filter)
}

func (s *memoryTaskStore) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountActive(s.tasks)
}

func (s *memoryTaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Subscribe registers a listener. Listeners run in registration order,
// outside the store lock, so they may read from the store.
func (s *memoryTaskStore) Subscribe(listener ChangeListener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()
}

func (s *memoryTaskStore) checkIndexLocked(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("index %d (have %d tasks): %w", index, len(s.tasks), ErrIndexOutOfRange)
	}
	return nil
}

func (s *memoryTaskStore) indexOfLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *memoryTaskStore) deleteLocked(index int) Change {
	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index:index], s.tasks[index+1:]...)
	return s.changeLocked(ChangeTaskDeleted, index, &removed)
}

func (s *memoryTaskStore) toggleLocked(index int, value bool) Change {
	s.tasks[index].IsCompleted = value
	task := s.tasks[index]
	return s.changeLocked(ChangeTaskToggled, index, &task)
}

func (s *memoryTaskStore) changeLocked(kind ChangeKind, index int, task *models.Task) Change {
	return Change{
		Kind:   kind,
		Index:  index,
		Task:   task,
		Filter: s.filter,
		Total:  len(s.tasks),
		Active: CountActive(s.tasks),
	}
}

func (s *memoryTaskStore) notify(change Change) {
	s.mu.Lock()
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}
