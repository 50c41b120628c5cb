// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"errors"
	"fmt"
	"time"
)

// Task represents a single task item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskInput is the body of create and update requests.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// APIError is a failed round trip to the backend.
// StatusCode is 0 when no response was received.
type APIError struct {
	StatusCode int
	Message    string // server-provided message, may be empty
	Err        error  // transport or decode error, may be nil
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode != 0:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return "request failed"
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-provided message carried by err,
// or "" if err carries none.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsAuthError reports whether err is a 401 or 403 from the backend.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
