package engine

import (
	"testing"

	"routined/internal/model"
)

func TestReorderAssignsDenseOrders(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", SortOrder: 7},
		{ID: "b", SortOrder: 0},
		{ID: "c", SortOrder: 99},
	}
	out := Reorder(tasks)
	for i, task := range out {
		if task.SortOrder != i {
			t.Fatalf("task %s got order %d want %d", task.ID, task.SortOrder, i)
		}
	}
	// Input list keeps its original values; Reorder returns copies.
	if tasks[0].SortOrder != 7 {
		t.Fatalf("input mutated: %d", tasks[0].SortOrder)
	}
}

func TestReorderPreservesGivenOrder(t *testing.T) {
	tasks := []model.Task{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	out := Reorder(tasks)
	want := []string{"c", "a", "b"}
	for i := range want {
		if out[i].ID != want[i] {
			t.Fatalf("position %d got %s want %s", i, out[i].ID, want[i])
		}
	}
}

func TestNextSortOrder(t *testing.T) {
	if got := NextSortOrder(nil); got != 0 {
		t.Fatalf("empty set: got %d want 0", got)
	}
	tasks := []model.Task{{SortOrder: 2}, {SortOrder: 5}, {SortOrder: 1}}
	if got := NextSortOrder(tasks); got != 6 {
		t.Fatalf("got %d want 6", got)
	}
}
