package planner

import (
	"errors"
	"testing"

	"github.com/taskfold/taskfold/models"
)

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}

func assertOrder(t *testing.T, got []models.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("schedule length = %d, want %d (%v)", len(got), len(want), ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("schedule = %v, want %v", ids(got), want)
		}
	}
}

func TestSchedule_LinearDependencies(t *testing.T) {
	// C depends on B, B depends on A; input deliberately scrambled.
	tasks := []models.Task{
		mkTask("task-C", 30, "task-B"),
		mkTask("task-A", 30),
		mkTask("task-B", 30, "task-A"),
	}

	sorted, err := Schedule(tasks)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	assertOrder(t, sorted, "task-A", "task-B", "task-C")
}

func TestSchedule_Diamond(t *testing.T) {
	// Diamond: D depends on B and C, B and C both depend on A
	//     A
	//    / \
	//   B   C
	//    \ /
	//     D
	tasks := []models.Task{
		mkTask("task-D", 30, "task-B", "task-C"),
		mkTask("task-B", 30, "task-A"),
		mkTask("task-C", 30, "task-A"),
		mkTask("task-A", 30),
	}

	sorted, err := Schedule(tasks)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	// B and C become ready together; B sits earlier in the task list.
	assertOrder(t, sorted, "task-A", "task-B", "task-C", "task-D")
}

// Among simultaneously ready tasks the earliest-inserted one goes first,
// even when a dependency chain completes between them.
func TestSchedule_InsertionOrderTieBreak(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-X", 30),
		mkTask("task-Y", 30, "task-X"),
		mkTask("task-Z", 30),
	}

	sorted, err := Schedule(tasks)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	// After X, both Y and Z are ready; Y precedes Z in the plan.
	assertOrder(t, sorted, "task-X", "task-Y", "task-Z")
}

func TestSchedule_IndependentTasksKeepPlanOrder(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-M", 10),
		mkTask("task-N", 20),
		mkTask("task-O", 30),
	}

	sorted, err := Schedule(tasks)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	assertOrder(t, sorted, "task-M", "task-N", "task-O")
}

func TestSchedule_Idempotent(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-D", 30, "task-B", "task-C"),
		mkTask("task-B", 30, "task-A"),
		mkTask("task-C", 30, "task-A"),
		mkTask("task-A", 30),
	}

	first, err := Schedule(tasks)
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	second, err := Schedule(tasks)
	if err != nil {
		t.Fatalf("Schedule() error on second run: %v", err)
	}
	assertOrder(t, second, ids(first)...)
}

func TestSchedule_WithCycle(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-A", 30, "task-B"),
		mkTask("task-B", 30, "task-A"),
	}

	_, err := Schedule(tasks)
	var cycleErr *CyclicGraphError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CyclicGraphError, got %v", err)
	}
	if len(cycleErr.Cycle) == 0 {
		t.Error("cycle error should carry the offending cycle")
	}
}

func TestSchedule_UnknownDependency(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-A", 30, "task-missing"),
	}

	_, err := Schedule(tasks)
	var unknownErr *UnknownDependencyError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownDependencyError, got %v", err)
	}
}

func TestSchedule_Empty(t *testing.T) {
	sorted, err := Schedule(nil)
	if err != nil {
		t.Fatalf("Schedule() error for empty input: %v", err)
	}
	if len(sorted) != 0 {
		t.Errorf("expected empty schedule, got %v", ids(sorted))
	}
}
