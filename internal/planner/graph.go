// Package planner implements the dependency-graph core of taskfold:
// validation, scheduling, timeline estimation and progress tracking. All
// functions operate on task snapshots and hold no state; callers load a
// plan, call in, and persist the result themselves.
package planner

import (
	"errors"
	"fmt"

	"github.com/taskfold/taskfold/models"
)

// Node colors for the cycle-detecting DFS.
const (
	white = 0 // unvisited
	gray  = 1 // in current path
	black = 2 // finished
)

// Validate checks that the tasks form a well-defined dependency DAG.
//
// It verifies, in order: IDs are present and unique, every dependency
// references a task in the set, no task depends on itself, and the graph
// contains no cycle. On failure the returned error is a
// *UnknownDependencyError or a *CyclicGraphError carrying the offending
// references; nothing downstream should run on an invalid graph.
func Validate(tasks []models.Task) error {
	taskMap := make(map[string]*models.Task, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			return errors.New("task ID cannot be empty")
		}
		if _, dup := taskMap[t.ID]; dup {
			return fmt.Errorf("duplicate task ID %s", t.ID)
		}
		taskMap[t.ID] = t
	}

	for i := range tasks {
		t := &tasks[i]
		for _, depID := range t.Dependencies {
			if depID == t.ID {
				return &CyclicGraphError{Cycle: []string{t.ID, t.ID}}
			}
			if _, ok := taskMap[depID]; !ok {
				return &UnknownDependencyError{TaskID: t.ID, DependencyID: depID}
			}
		}
	}

	if cycle := findCycle(tasks, taskMap); cycle != nil {
		return &CyclicGraphError{Cycle: cycle}
	}
	return nil
}

// findCycle runs a three-state DFS over the dependency edges. It returns
// the cycle path in dependency order (first ID repeated at the end), or
// nil when the graph is acyclic.
func findCycle(tasks []models.Task, taskMap map[string]*models.Task) []string {
	color := make(map[string]int, len(tasks))
	parent := make(map[string]string, len(tasks))

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		for _, depID := range taskMap[id].Dependencies {
			if color[depID] == gray {
				// Found cycle: walk parents back to the repeated node.
				cyclePath = []string{depID}
				current := id
				for current != depID {
					cyclePath = append(cyclePath, current)
					current = parent[current]
				}
				cyclePath = append(cyclePath, depID)
				// Reverse to get dependency order.
				for i, j := 0, len(cyclePath)-1; i < j; i, j = i+1, j-1 {
					cyclePath[i], cyclePath[j] = cyclePath[j], cyclePath[i]
				}
				return true
			}
			if color[depID] == white {
				parent[depID] = id
				if dfs(depID) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for i := range tasks {
		if color[tasks[i].ID] == white {
			if dfs(tasks[i].ID) {
				return cyclePath
			}
		}
	}
	return nil
}
