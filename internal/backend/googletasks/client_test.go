package googletasks_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/service"
)

// fakeAPI serves the subset of the Google Tasks REST surface the client uses.
type fakeAPI struct {
	status  string // status returned by GET
	patches []map[string]any
	methods []string
}

func (f *fakeAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.methods = append(f.methods, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/lists/@default/tasks"):
			io.WriteString(w, `{"items":[
				{"id":"a","title":"First","notes":"n","status":"needsAction","updated":"2024-05-01T10:00:00.000Z"},
				{"id":"b","title":"Second","status":"completed","updated":"2024-05-02T10:00:00.000Z"}]}`)
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/tasks/missing"):
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"code":404,"message":"Task not found"}}`)
		case r.Method == http.MethodGet:
			io.WriteString(w, `{"id":"a","title":"First","status":"`+f.status+`"}`)
		case r.Method == http.MethodPost:
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			body["id"] = "new"
			body["status"] = "needsAction"
			json.NewEncoder(w).Encode(body)
		case r.Method == http.MethodPatch:
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			f.patches = append(f.patches, body)
			body["id"] = "a"
			if _, ok := body["title"]; !ok {
				body["title"] = "First"
			}
			json.NewEncoder(w).Encode(body)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func newClient(t *testing.T, api *fakeAPI) *googletasks.Client {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	c, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/")
	if err != nil {
		t.Fatalf("NewWithHTTPClient() error = %v", err)
	}
	return c
}

func TestListTasks_MapsFields(t *testing.T) {
	c := newClient(t, &fakeAPI{})

	got, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != "a" || got[0].Description != "n" || got[0].Completed {
		t.Errorf("unexpected first task %+v", got[0])
	}
	if !got[1].Completed {
		t.Error("expected second task completed")
	}
	if got[0].UpdatedAt.IsZero() || !got[0].CreatedAt.Equal(got[0].UpdatedAt) {
		t.Errorf("expected created == updated, got %v / %v", got[0].CreatedAt, got[0].UpdatedAt)
	}
}

func TestCreateTask(t *testing.T) {
	c := newClient(t, &fakeAPI{})

	got, err := c.CreateTask(context.Background(), service.TaskInput{Title: "Write", Description: "notes"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if got.ID != "new" || got.Title != "Write" || got.Description != "notes" {
		t.Errorf("unexpected task %+v", got)
	}
}

func TestToggleTask_CompletesOpenTask(t *testing.T) {
	api := &fakeAPI{status: "needsAction"}
	c := newClient(t, api)

	got, err := c.ToggleTask(context.Background(), "a")
	if err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if !got.Completed {
		t.Error("expected task completed")
	}
	if api.patches[0]["status"] != "completed" {
		t.Errorf("expected completed patch, got %v", api.patches[0])
	}
}

func TestToggleTask_ReopensCompletedTask(t *testing.T) {
	api := &fakeAPI{status: "completed"}
	c := newClient(t, api)

	got, err := c.ToggleTask(context.Background(), "a")
	if err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if got.Completed {
		t.Error("expected task reopened")
	}
	patch := api.patches[0]
	if patch["status"] != "needsAction" {
		t.Errorf("expected needsAction patch, got %v", patch)
	}
	if v, ok := patch["completed"]; !ok || v != nil {
		t.Errorf("expected completed to be nulled, got %v", patch)
	}
}

func TestUpdateTask_SendsEmptyNotes(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api)

	if _, err := c.UpdateTask(context.Background(), "a", service.TaskInput{Title: "Renamed"}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if v, ok := api.patches[0]["notes"]; !ok || v != "" {
		t.Errorf("expected empty notes to be sent, got %v", api.patches[0])
	}
}

func TestDeleteTask(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(t, api)

	if err := c.DeleteTask(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if last := api.methods[len(api.methods)-1]; !strings.HasPrefix(last, "DELETE ") {
		t.Errorf("expected DELETE, got %s", last)
	}
}

func TestErrorMessageIsSurfaced(t *testing.T) {
	c := newClient(t, &fakeAPI{})

	_, err := c.ToggleTask(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := service.ServerMessage(err); msg != "Task not found" {
		t.Errorf("expected Google message, got %q", msg)
	}
}
