package commands

import (
	"errors"
	"testing"

	"taskboard/internal/service"
	"taskboard/internal/store"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    TaskRef
		wantErr string
	}{
		{"number", []string{"5"}, TaskRef{Num: 5}, ""},
		{"number with spaces", []string{" 12 "}, TaskRef{Num: 12}, ""},
		{"id", []string{"#a1b2"}, TaskRef{ID: "a1b2"}, ""},
		{"bare hash", []string{"#"}, TaskRef{}, "invalid task reference: #"},
		{"word", []string{"abc"}, TaskRef{}, "invalid task reference: abc"},
		{"negative", []string{"-1"}, TaskRef{}, "invalid task reference: -1"},
		{"non ascii digit", []string{"٣"}, TaskRef{}, "invalid task reference: ٣"},
		{"extra arg", []string{"1", "2"}, TaskRef{}, "unexpected argument: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskRef(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseTaskRef_NoArgs(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestTaskRefString(t *testing.T) {
	if s := (TaskRef{Num: 3}).String(); s != "3" {
		t.Errorf("expected 3, got %q", s)
	}
	if s := (TaskRef{ID: "x"}).String(); s != "#x" {
		t.Errorf("expected #x, got %q", s)
	}
}

func TestResolveTaskRef(t *testing.T) {
	state := store.State{Tasks: []service.Task{
		{ID: "a", Title: "done", Completed: true},
		{ID: "b", Title: "open"},
		{ID: "c", Title: "also open"},
	}}

	tests := []struct {
		ref    TaskRef
		wantID string
	}{
		{TaskRef{Num: 1}, "b"},
		{TaskRef{Num: 2}, "c"},
		{TaskRef{Num: 3}, "a"},
		{TaskRef{ID: "a"}, "a"},
	}
	for _, tt := range tests {
		got, err := resolveTaskRef(state, tt.ref)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.ref, err)
			continue
		}
		if got.ID != tt.wantID {
			t.Errorf("%s: expected %s, got %s", tt.ref, tt.wantID, got.ID)
		}
	}

	for _, ref := range []TaskRef{{Num: 4}, {Num: 0}, {ID: "zz"}} {
		var notFound *errRefNotFound
		if _, err := resolveTaskRef(state, ref); !errors.As(err, &notFound) {
			t.Errorf("%s: expected not found, got %v", ref, err)
		}
	}
}
