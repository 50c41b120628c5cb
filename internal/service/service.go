// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Every REST round trip goes through this interface.
// The store and the front ends never import a backend directly.
type Service interface {
	// ListTasks returns the whole collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the server's record,
	// including the assigned ID and timestamps.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces title and description of a task and returns
	// the updated record.
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	// ToggleTask flips the completion flag and returns the updated record.
	ToggleTask(ctx context.Context, id string) (Task, error)

	// DeleteTask deletes a task. The response body is not interpreted.
	DeleteTask(ctx context.Context, id string) error
}
