package core

import (
	"reflect"
	"strings"
	"testing"

	"github.com/valter-silva-au/todos/pkg/models"
	"pgregory.net/rapid"
)

// =============================================================================
// Generators
// =============================================================================

func genTaskName(t *rapid.T, label string) string {
	return rapid.StringMatching(`[ ]{0,2}[a-z][a-z ]{0,15}[ ]{0,2}`).Draw(t, label)
}

func genBlankName(t *rapid.T, label string) string {
	return rapid.StringMatching(`[ \t\n]{0,5}`).Draw(t, label)
}

// genStore builds a store holding 0..20 tasks with random completion flags.
func genStore(t *rapid.T, minLen int) TaskStore {
	s := NewTaskStore(&seqIDGenerator{}, "")
	n := rapid.IntRange(minLen, 20).Draw(t, "n")
	for i := 0; i < n; i++ {
		s.Add(genTaskName(t, "name"))
		if rapid.Bool().Draw(t, "completed") {
			_ = s.ToggleCompleted(i, true)
		}
	}
	return s
}

// =============================================================================
// Properties
// =============================================================================

func TestProperty_AddNonBlankAppendsVerbatim(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genStore(rt, 0)
		name := genTaskName(rt, "newName")
		before := s.Len()

		if !s.Add(name) {
			rt.Fatalf("Add(%q) = false", name)
		}
		tasks := s.Tasks()
		if len(tasks) != before+1 {
			rt.Fatalf("len = %d, want %d", len(tasks), before+1)
		}
		last := tasks[len(tasks)-1]
		if last.TaskName != name || last.IsCompleted {
			rt.Fatalf("last = %+v, want name %q active", last, name)
		}
	})
}

func TestProperty_AddBlankIsNoOp(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genStore(rt, 0)
		before := s.Tasks()

		if s.Add(genBlankName(rt, "blank")) {
			rt.Fatal("Add(blank) = true")
		}
		if after := s.Tasks(); !reflect.DeepEqual(before, after) {
			rt.Fatalf("collection changed: %v -> %v", before, after)
		}
	})
}

func TestProperty_ToggleRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genStore(rt, 1)
		i := rapid.IntRange(0, s.Len()-1).Draw(rt, "i")
		before := s.Tasks()

		_ = s.ToggleCompleted(i, true)
		_ = s.ToggleCompleted(i, false)

		after := s.Tasks()
		for j := range after {
			want := before[j]
			if j == i {
				want.IsCompleted = false
			}
			if after[j] != want {
				rt.Fatalf("task %d = %+v, want %+v", j, after[j], want)
			}
		}
	})
}

func TestProperty_DeleteShiftsByOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genStore(rt, 1)
		i := rapid.IntRange(0, s.Len()-1).Draw(rt, "i")
		before := s.Tasks()

		if err := s.Delete(i); err != nil {
			rt.Fatalf("Delete(%d) error = %v", i, err)
		}
		after := s.Tasks()
		if len(after) != len(before)-1 {
			rt.Fatalf("len = %d, want %d", len(after), len(before)-1)
		}
		for j := 0; j < i; j++ {
			if after[j] != before[j] {
				rt.Fatalf("task %d moved: %+v != %+v", j, after[j], before[j])
			}
		}
		for j := i + 1; j < len(before); j++ {
			if after[j-1] != before[j] {
				rt.Fatalf("task %d not shifted: %+v != %+v", j, after[j-1], before[j])
			}
		}
	})
}

func TestProperty_ClearCompletedIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genStore(rt, 0)

		s.ClearCompleted()
		once := s.Tasks()
		s.ClearCompleted()
		twice := s.Tasks()

		if !reflect.DeepEqual(once, twice) {
			rt.Fatalf("second clear changed collection: %v -> %v", once, twice)
		}
		for _, task := range twice {
			if task.IsCompleted {
				rt.Fatalf("completed task %+v survived clear", task)
			}
		}
	})
}

func TestProperty_DeriveViewAllIsIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genStore(rt, 0).Tasks()
		view := DeriveView(tasks, models.FilterAll)
		if len(view) != len(tasks) {
			rt.Fatalf("len = %d, want %d", len(view), len(tasks))
		}
		for i := range tasks {
			if view[i] != tasks[i] {
				rt.Fatalf("view[%d] = %+v, want %+v", i, view[i], tasks[i])
			}
		}
	})
}

func TestProperty_ActiveAndCompletedPartition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genStore(rt, 0).Tasks()
		active := DeriveIndexedView(tasks, models.FilterActive)
		completed := DeriveIndexedView(tasks, models.FilterCompleted)

		if len(active)+len(completed) != len(tasks) {
			rt.Fatalf("%d active + %d completed != %d", len(active), len(completed), len(tasks))
		}
		if len(active) != CountActive(tasks) {
			rt.Fatalf("CountActive = %d, active view has %d", CountActive(tasks), len(active))
		}
		for _, item := range append(active, completed...) {
			if tasks[item.Index] != item.Task {
				rt.Fatalf("item %+v does not point at its original task", item)
			}
		}
	})
}

// The store behaves like a plain slice under any sequence of operations.
func TestProperty_StoreMatchesSliceModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewTaskStore(&seqIDGenerator{}, "")
		var model []models.Task
		ids := &seqIDGenerator{}

		rt.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				name := rapid.OneOf(
					rapid.StringMatching(`[a-z]{1,8}`),
					rapid.StringMatching(`[ ]{0,3}`),
				).Draw(t, "name")
				s.Add(name)
				if strings.TrimSpace(name) != "" {
					model = append(model, models.Task{ID: ids.GenerateID(), TaskName: name})
				}
			},
			"delete": func(t *rapid.T) {
				if len(model) == 0 {
					t.Skip("empty")
				}
				i := rapid.IntRange(0, len(model)-1).Draw(t, "i")
				if err := s.Delete(i); err != nil {
					t.Fatalf("Delete(%d) = %v", i, err)
				}
				model = append(model[:i:i], model[i+1:]...)
			},
			"toggle": func(t *rapid.T) {
				if len(model) == 0 {
					t.Skip("empty")
				}
				i := rapid.IntRange(0, len(model)-1).Draw(t, "i")
				v := rapid.Bool().Draw(t, "v")
				if err := s.ToggleCompleted(i, v); err != nil {
					t.Fatalf("ToggleCompleted(%d) = %v", i, err)
				}
				model[i].IsCompleted = v
			},
			"clear": func(t *rapid.T) {
				s.ClearCompleted()
				kept := model[:0:0]
				for _, task := range model {
					if !task.IsCompleted {
						kept = append(kept, task)
					}
				}
				model = kept
			},
			"": func(t *rapid.T) {
				got := s.Tasks()
				if len(got) != len(model) {
					t.Fatalf("len = %d, model has %d", len(got), len(model))
				}
				for i := range got {
					if got[i] != model[i] {
						t.Fatalf("task %d = %+v, model %+v", i, got[i], model[i])
					}
				}
			},
		})
	})
}
