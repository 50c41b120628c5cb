// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = &service.APIError{StatusCode: http.StatusNotFound, Message: "Task not found"}

// FakeService is an in-memory implementation of service.Service for testing.
// New tasks are prepended, the way the REST server orders its collection.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	calls []string
	now   func() time.Time

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	ToggleTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		now: func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) },
	}
}

// AddTask appends a task to the fake backend and returns it.
func (f *FakeService) AddTask(id, title string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: f.now(),
		UpdatedAt: f.now(),
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the backend's tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns the names of the methods invoked so far, in order.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *FakeService) index(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	t := service.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   f.now(),
		UpdatedAt:   f.now(),
	}
	f.tasks = append([]service.Task{t}, f.tasks...)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	i := f.index(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.tasks[i].Title = in.Title
	f.tasks[i].Description = in.Description
	f.tasks[i].UpdatedAt = f.now()
	return f.tasks[i], nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ToggleTask")
	if f.ToggleTaskErr != nil {
		return service.Task{}, f.ToggleTaskErr
	}
	i := f.index(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.tasks[i].Completed = !f.tasks[i].Completed
	f.tasks[i].UpdatedAt = f.now()
	return f.tasks[i], nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	i := f.index(id)
	if i < 0 {
		return ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}
