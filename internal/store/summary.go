package store

import "taskboard/internal/service"

// Counts is the header summary of a task list.
type Counts struct {
	Pending   int
	Completed int
	Total     int
}

// Count tallies tasks by completion.
func Count(tasks []service.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

// Partition splits tasks into pending and completed groups, keeping order.
func Partition(tasks []service.Task) (pending, completed []service.Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

// DisplayOrder returns the pending group followed by the completed group.
// Task numbers shown to the user follow this order.
func DisplayOrder(tasks []service.Task) []service.Task {
	pending, completed := Partition(tasks)
	return append(pending, completed...)
}

// Find returns the task with the given ID.
func (s State) Find(id string) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
