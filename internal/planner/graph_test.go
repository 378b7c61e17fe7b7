package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/taskfold/taskfold/models"
)

// mkTask builds a minimal task for graph tests.
func mkTask(id string, minutes int, deps ...string) models.Task {
	return models.Task{
		ID:               id,
		Title:            "Task " + strings.TrimPrefix(id, "task-"),
		EstimatedMinutes: minutes,
		Priority:         models.PriorityMedium,
		Status:           models.StatusPending,
		Dependencies:     deps,
	}
}

func TestValidate_LinearChain(t *testing.T) {
	// A <- B <- C (linear, no cycle)
	tasks := []models.Task{
		mkTask("task-A", 30),
		mkTask("task-B", 30, "task-A"),
		mkTask("task-C", 30, "task-B"),
	}

	if err := Validate(tasks); err != nil {
		t.Errorf("Validate() returned error for valid DAG: %v", err)
	}
}

func TestValidate_EmptyTaskList(t *testing.T) {
	if err := Validate(nil); err != nil {
		t.Errorf("Validate() returned error for empty task list: %v", err)
	}
}

func TestValidate_WithCycle(t *testing.T) {
	// A -> C -> B -> A (cycle through dependencies)
	tasks := []models.Task{
		mkTask("task-A", 30, "task-C"),
		mkTask("task-B", 30, "task-A"),
		mkTask("task-C", 30, "task-B"),
	}

	err := Validate(tasks)
	if err == nil {
		t.Fatal("Validate() should return error for cycle, got nil")
	}

	var cycleErr *CyclicGraphError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CyclicGraphError, got %T: %v", err, err)
	}

	cycle := cycleErr.Cycle
	if len(cycle) != 4 {
		t.Fatalf("expected cycle of 4 elements (first repeated), got %v", cycle)
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle should start and end with the same task, got %v", cycle)
	}

	// Every hop in the reported cycle must be a real dependency edge.
	taskMap := map[string][]string{}
	for _, task := range tasks {
		taskMap[task.ID] = task.Dependencies
	}
	for i := 0; i < len(cycle)-1; i++ {
		found := false
		for _, dep := range taskMap[cycle[i]] {
			if dep == cycle[i+1] {
				found = true
			}
		}
		if !found {
			t.Errorf("cycle hop %s -> %s is not a dependency edge", cycle[i], cycle[i+1])
		}
	}
}

func TestValidate_SelfDependency(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-A", 30, "task-A"),
	}

	err := Validate(tasks)
	var cycleErr *CyclicGraphError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CyclicGraphError for self-dependency, got %v", err)
	}
	if len(cycleErr.Cycle) != 2 || cycleErr.Cycle[0] != "task-A" || cycleErr.Cycle[1] != "task-A" {
		t.Errorf("self-dependency cycle = %v, want [task-A task-A]", cycleErr.Cycle)
	}
}

func TestValidate_UnknownDependency(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-A", 30),
		mkTask("task-B", 30, "task-ghost"),
	}

	err := Validate(tasks)
	var unknownErr *UnknownDependencyError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownDependencyError, got %v", err)
	}
	if unknownErr.TaskID != "task-B" {
		t.Errorf("TaskID = %q, want task-B", unknownErr.TaskID)
	}
	if unknownErr.DependencyID != "task-ghost" {
		t.Errorf("DependencyID = %q, want task-ghost", unknownErr.DependencyID)
	}
}

// Removing a task that others still reference must surface on the next
// validation rather than being silently ignored.
func TestValidate_DanglingAfterRemoval(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-A", 30),
		mkTask("task-B", 30, "task-A"),
	}
	if err := Validate(tasks); err != nil {
		t.Fatalf("setup plan should be valid: %v", err)
	}

	// Drop task-A, leaving B's reference dangling.
	remaining := tasks[1:]

	err := Validate(remaining)
	var unknownErr *UnknownDependencyError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownDependencyError after removal, got %v", err)
	}
	if unknownErr.DependencyID != "task-A" {
		t.Errorf("DependencyID = %q, want task-A", unknownErr.DependencyID)
	}
}

func TestValidate_DuplicateID(t *testing.T) {
	tasks := []models.Task{
		mkTask("task-A", 30),
		mkTask("task-A", 45),
	}

	if err := Validate(tasks); err == nil {
		t.Error("Validate() should return error for duplicate IDs, got nil")
	}
}

func TestValidate_EmptyID(t *testing.T) {
	tasks := []models.Task{
		mkTask("", 30),
	}

	if err := Validate(tasks); err == nil {
		t.Error("Validate() should return error for empty ID, got nil")
	}
}
