package script

import (
	"fmt"

	"github.com/valter-silva-au/todos/internal/core"
	"github.com/valter-silva-au/todos/pkg/models"
)

// IntentError reports the intent that stopped a replay. Position is 1-based.
type IntentError struct {
	Position int
	Op       Op
	Err      error
}

func (e *IntentError) Error() string {
	return fmt.Sprintf("intent %d (%s): %s", e.Position, e.Op, e.Err)
}

func (e *IntentError) Unwrap() error {
	return e.Err
}

// Result summarises a replay.
type Result struct {
	Applied int // intents that reached the store
	Ignored int // blank adds
}

// Replay applies intents to store in order, stopping at the first one that
// fails. Intents before the failure stay applied. A blank add is ignored,
// not a failure.
func Replay(store core.TaskStore, intents []Intent) (Result, error) {
	var res Result
	for i, intent := range intents {
		applied, err := apply(store, intent)
		if err != nil {
			return res, &IntentError{Position: i + 1, Op: intent.Op, Err: err}
		}
		if applied {
			res.Applied++
		} else {
			res.Ignored++
		}
	}
	return res, nil
}

func apply(store core.TaskStore, intent Intent) (bool, error) {
	switch intent.Op {
	case OpAdd:
		return store.Add(intent.Name), nil
	case OpDelete:
		if intent.Index == nil {
			return false, fmt.Errorf("delete requires an index")
		}
		return true, store.Delete(*intent.Index)
	case OpToggle:
		if intent.Index == nil || intent.Value == nil {
			return false, fmt.Errorf("toggle requires an index and a value")
		}
		return true, store.ToggleCompleted(*intent.Index, *intent.Value)
	case OpClearCompleted:
		store.ClearCompleted()
		return true, nil
	case OpSetFilter:
		mode, err := models.ParseFilterMode(intent.Filter)
		if err != nil {
			return false, err
		}
		store.SetFilter(mode)
		return true, nil
	default:
		return false, fmt.Errorf("unknown op %q", intent.Op)
	}
}
