// Package store holds the client-side task state and the operations that
// keep it in sync with the backend.
//
// Every asynchronous operation goes through three phases:
//
//	Begin   pending: loading on, error cleared
//	Execute the backend round trip, no state change
//	Finish  fulfilled (apply the result) or rejected (record the message)
//
// Dispatch runs the three phases in sequence. Event loops that must not block
// (the terminal UI) call Begin and Finish on their own goroutine and run
// Execute in the background.
package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Op identifies one of the asynchronous operations.
type Op int

const (
	OpFetch Op = iota
	OpCreate
	OpUpdate
	OpToggle
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpToggle:
		return "toggle"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// DefaultMessage is the error recorded when a failure carries no server message.
func (o Op) DefaultMessage() string {
	switch o {
	case OpFetch:
		return "Failed to fetch tasks"
	case OpCreate:
		return "Failed to add task"
	case OpUpdate:
		return "Failed to update task"
	case OpToggle:
		return "Failed to toggle task"
	case OpDelete:
		return "Failed to delete task"
	}
	return "Request failed"
}

// Request describes one dispatched operation.
type Request struct {
	Op    Op
	ID    string            // update, toggle, delete
	Input service.TaskInput // create, update
}

// Fetch builds a fetch-all request.
func Fetch() Request {
	return Request{Op: OpFetch}
}

// Create builds a create request.
func Create(in service.TaskInput) Request {
	return Request{Op: OpCreate, Input: in}
}

// Update builds an update request.
func Update(id string, in service.TaskInput) Request {
	return Request{Op: OpUpdate, ID: id, Input: in}
}

// Toggle builds a toggle request.
func Toggle(id string) Request {
	return Request{Op: OpToggle, ID: id}
}

// Delete builds a delete request.
func Delete(id string) Request {
	return Request{Op: OpDelete, ID: id}
}

// Result is the outcome of Execute. Err is nil when the operation was fulfilled.
type Result struct {
	Request Request
	Tasks   []service.Task // fetch
	Task    service.Task   // create, update, toggle
	Err     error
}

// Fulfilled reports whether the operation succeeded.
func (r Result) Fulfilled() bool {
	return r.Err == nil
}

// Message returns the error message the store records for r, or "".
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	if msg := service.ServerMessage(r.Err); msg != "" {
		return msg
	}
	return r.Request.Op.DefaultMessage()
}

// State is a snapshot of the slice.
type State struct {
	Tasks   []service.Task
	Loading bool
	Error   string
}

// Store owns the task list. The mutex protects memory only: overlapping
// operations still apply in completion order, and Loading is a single flag
// that the first operation to finish turns off.
type Store struct {
	svc service.Service
	log *log.Logger

	mu    sync.RWMutex
	state State
	subs  []func(State)
}

// New creates an empty store backed by svc. logger may be nil.
func New(svc service.Service, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		svc:   svc,
		log:   logger,
		state: State{Tasks: []service.Task{}},
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	st := s.state
	st.Tasks = make([]service.Task, len(s.state.Tasks))
	copy(st.Tasks, s.state.Tasks)
	return st
}

// Subscribe registers fn to be called with the new state after every transition.
// fn runs without the store lock held.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// update applies fn under the lock and notifies subscribers.
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	st := s.snapshot()
	subs := s.subs
	s.mu.Unlock()

	for _, sub := range subs {
		sub(st)
	}
}

// Begin moves the store to pending for req.
func (s *Store) Begin(req Request) {
	s.log.Debug("pending", "op", req.Op, "id", req.ID)
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
}

// Execute performs the backend call for req without touching state.
func (s *Store) Execute(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	switch req.Op {
	case OpFetch:
		res.Tasks, res.Err = s.svc.ListTasks(ctx)
	case OpCreate:
		res.Task, res.Err = s.svc.CreateTask(ctx, req.Input)
	case OpUpdate:
		res.Task, res.Err = s.svc.UpdateTask(ctx, req.ID, req.Input)
	case OpToggle:
		res.Task, res.Err = s.svc.ToggleTask(ctx, req.ID)
	case OpDelete:
		res.Err = s.svc.DeleteTask(ctx, req.ID)
	}
	return res
}

// Finish applies res: fulfilled results change the list, rejected results
// record the error message and leave the list untouched.
func (s *Store) Finish(res Result) {
	if !res.Fulfilled() {
		msg := res.Message()
		s.log.Debug("rejected", "op", res.Request.Op, "id", res.Request.ID, "error", msg, "cause", res.Err)
		s.update(func(st *State) {
			st.Loading = false
			st.Error = msg
		})
		return
	}

	s.log.Debug("fulfilled", "op", res.Request.Op, "id", res.Request.ID)
	s.update(func(st *State) {
		st.Loading = false
		switch res.Request.Op {
		case OpFetch:
			st.Tasks = make([]service.Task, len(res.Tasks))
			copy(st.Tasks, res.Tasks)
		case OpCreate:
			st.Tasks = append([]service.Task{res.Task}, st.Tasks...)
		case OpUpdate, OpToggle:
			replace(st.Tasks, res.Task)
		case OpDelete:
			st.Tasks = remove(st.Tasks, res.Request.ID)
		}
	})
}

// Dispatch runs req through all three phases and returns the result.
// The error, if any, is already recorded in the state.
func (s *Store) Dispatch(ctx context.Context, req Request) Result {
	s.Begin(req)
	res := s.Execute(ctx, req)
	s.Finish(res)
	return res
}

// ClearError sets the error to none.
func (s *Store) ClearError() {
	s.update(func(st *State) {
		st.Error = ""
	})
}

// FetchAll replaces the list with the server's collection.
func (s *Store) FetchAll(ctx context.Context) error {
	return s.Dispatch(ctx, Fetch()).Err
}

// CreateTask creates a task and prepends it.
func (s *Store) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	res := s.Dispatch(ctx, Create(in))
	return res.Task, res.Err
}

// UpdateTask updates a task in place.
func (s *Store) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	res := s.Dispatch(ctx, Update(id, in))
	return res.Task, res.Err
}

// ToggleTask flips a task's completion in place.
func (s *Store) ToggleTask(ctx context.Context, id string) (service.Task, error) {
	res := s.Dispatch(ctx, Toggle(id))
	return res.Task, res.Err
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.Dispatch(ctx, Delete(id)).Err
}

// replace swaps the entry with t's ID for t. Unknown IDs are ignored.
func replace(tasks []service.Task, t service.Task) {
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			return
		}
	}
}

// remove drops the entries with the given ID, keeping order.
func remove(tasks []service.Task, id string) []service.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
