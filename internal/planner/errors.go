package planner

import (
	"fmt"
	"strings"
)

// UnknownDependencyError reports a dependency reference to a task ID that
// does not exist in the plan. Unknown references are never silently
// dropped; the caller must repair the plan before scheduling.
type UnknownDependencyError struct {
	TaskID       string
	DependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task %s depends on unknown task %s", e.TaskID, e.DependencyID)
}

// CyclicGraphError reports a dependency cycle. Cycle holds the task IDs in
// dependency order, with the first ID repeated at the end. A
// self-dependency yields a two-element cycle.
type CyclicGraphError struct {
	Cycle []string
}

func (e *CyclicGraphError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Cycle, " -> "))
}
