package commands

import (
	"context"
	"fmt"

	"taskboard/internal/service"
	"taskboard/internal/store"
)

// errRefNotFound is returned when a reference matches no task.
type errRefNotFound struct {
	ref TaskRef
}

func (e *errRefNotFound) Error() string {
	if e.ref.ID != "" {
		return fmt.Sprintf("task not found: %s", e.ref.ID)
	}
	return fmt.Sprintf("task number out of range: %d", e.ref.Num)
}

// lookupTask fetches the list into the store and resolves ref against it.
// A fetch failure is returned as is; the store has already recorded it.
func lookupTask(ctx context.Context, st *store.Store, ref TaskRef) (service.Task, error) {
	if err := st.FetchAll(ctx); err != nil {
		return service.Task{}, err
	}
	return resolveTaskRef(st.State(), ref)
}

// resolveTaskRef finds the task a reference points to. Numbers follow the
// display order of the list command (pending first, then completed).
func resolveTaskRef(state store.State, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		if t, ok := state.Find(ref.ID); ok {
			return t, nil
		}
		return service.Task{}, &errRefNotFound{ref: ref}
	}

	ordered := store.DisplayOrder(state.Tasks)
	if ref.Num < 1 || ref.Num > len(ordered) {
		return service.Task{}, &errRefNotFound{ref: ref}
	}
	return ordered[ref.Num-1], nil
}
