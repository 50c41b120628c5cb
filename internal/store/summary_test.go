package store_test

import (
	"reflect"
	"testing"

	"taskboard/internal/service"
	"taskboard/internal/store"
)

func sample() []service.Task {
	return []service.Task{
		{ID: "1", Title: "one"},
		{ID: "2", Title: "two", Completed: true},
		{ID: "3", Title: "three"},
	}
}

func TestCount(t *testing.T) {
	got := store.Count(sample())
	want := store.Counts{Pending: 2, Completed: 1, Total: 3}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if zero := store.Count(nil); zero != (store.Counts{}) {
		t.Errorf("expected zero counts, got %+v", zero)
	}
}

func TestPartition(t *testing.T) {
	pending, completed := store.Partition(sample())
	if got := ids(pending); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("unexpected pending %v", got)
	}
	if got := ids(completed); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("unexpected completed %v", got)
	}
}

func TestDisplayOrder(t *testing.T) {
	if got := ids(store.DisplayOrder(sample())); !reflect.DeepEqual(got, []string{"1", "3", "2"}) {
		t.Errorf("unexpected order %v", got)
	}
}

func TestStateFind(t *testing.T) {
	st := store.State{Tasks: sample()}
	if task, ok := st.Find("2"); !ok || task.Title != "two" {
		t.Errorf("expected to find task 2, got %+v %v", task, ok)
	}
	if _, ok := st.Find("9"); ok {
		t.Error("expected miss")
	}
}
