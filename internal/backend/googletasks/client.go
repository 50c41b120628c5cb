// Package googletasks implements the service.Service interface using the Google Tasks API.
// All operations target the user's default task list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Service using the Google Tasks API.
type Client struct {
	svc     *tasks.Service
	timeout time.Duration
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist (see the login command).
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	// Load token
	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes on its own
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{svc: svc, timeout: cfg.Timeout}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, timeout: config.DefaultTimeout}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// ListTasks returns every task of the default list, completed ones included,
// in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result := []service.Task{}
	err := c.svc.Tasks.List(DefaultListID).
		MaxResults(100).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, fromAPI(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateTask inserts a task at the top of the default list.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	t, err := c.svc.Tasks.Insert(DefaultListID, &tasks.Task{
		Title: in.Title,
		Notes: in.Description,
	}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return fromAPI(t), nil
}

// UpdateTask patches title and notes.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	patch := &tasks.Task{Title: in.Title, Notes: in.Description}
	// Notes is omitempty; force it so clearing the description sticks.
	patch.ForceSendFields = []string{"Notes"}

	t, err := c.svc.Tasks.Patch(DefaultListID, id, patch).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return fromAPI(t), nil
}

// ToggleTask reads the task and flips its status.
func (c *Client) ToggleTask(ctx context.Context, id string) (service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	cur, err := c.svc.Tasks.Get(DefaultListID, id).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}

	patch := &tasks.Task{Status: statusCompleted}
	if cur.Status == statusCompleted {
		patch.Status = statusNeedsAction
		// Reopening requires clearing the completion time.
		patch.NullFields = []string{"Completed"}
	}

	t, err := c.svc.Tasks.Patch(DefaultListID, id, patch).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return fromAPI(t), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.svc.Tasks.Delete(DefaultListID, id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// fromAPI maps a Google task. Google exposes no creation time, so the
// update time stands in for both timestamps.
func fromAPI(t *tasks.Task) service.Task {
	updated, _ := time.Parse(time.RFC3339, t.Updated)
	return service.Task{
		ID:          t.Id,
		Title:       t.Title,
		Description: t.Notes,
		Completed:   t.Status == statusCompleted,
		CreatedAt:   updated,
		UpdatedAt:   updated,
	}
}

// wrapError converts API errors into *service.APIError so the store can
// surface Google's message.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &service.APIError{StatusCode: gerr.Code, Message: gerr.Message, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.APIError{Err: fmt.Errorf("request timed out")}
	}

	return &service.APIError{Err: err}
}
