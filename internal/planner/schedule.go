package planner

import (
	"sort"

	"github.com/taskfold/taskfold/models"
)

// Schedule returns the tasks in a dependency-respecting execution order
// using Kahn's algorithm over in-degree counts.
//
// When several tasks are ready at the same time, the one appearing
// earliest in the plan's task list is emitted first, so the order is
// deterministic and stable across runs. The input is not modified.
//
// Scheduling refuses invalid graphs: an unknown dependency reference
// returns *UnknownDependencyError and a cycle returns *CyclicGraphError
// rather than a partial order. Callers normally run Validate first.
func Schedule(tasks []models.Task) ([]models.Task, error) {
	if len(tasks) == 0 {
		return []models.Task{}, nil
	}

	indexByID := make(map[string]int, len(tasks))
	for i := range tasks {
		indexByID[tasks[i].ID] = i
	}

	// Build in-degree counts and forward adjacency (dependency → dependents).
	inDegree := make([]int, len(tasks))
	dependents := make([][]int, len(tasks))
	for i := range tasks {
		for _, depID := range tasks[i].Dependencies {
			depIdx, ok := indexByID[depID]
			if !ok {
				return nil, &UnknownDependencyError{TaskID: tasks[i].ID, DependencyID: depID}
			}
			inDegree[i]++
			dependents[depIdx] = append(dependents[depIdx], i)
		}
	}

	// Ready set kept sorted by insertion index; seeding in task-list order
	// keeps it ascending from the start.
	var ready []int
	for i := range tasks {
		if inDegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	sorted := make([]models.Task, 0, len(tasks))
	for len(ready) > 0 {
		idx := ready[0]
		ready = ready[1:]
		sorted = append(sorted, tasks[idx])

		inserted := false
		for _, depIdx := range dependents[idx] {
			inDegree[depIdx]--
			if inDegree[depIdx] == 0 {
				ready = append(ready, depIdx)
				inserted = true
			}
		}
		if inserted {
			// Newly ready tasks may precede queued ones in insertion order.
			sort.Ints(ready)
		}
	}

	if len(sorted) != len(tasks) {
		taskMap := make(map[string]*models.Task, len(tasks))
		for i := range tasks {
			taskMap[tasks[i].ID] = &tasks[i]
		}
		cycle := findCycle(tasks, taskMap)
		if cycle == nil {
			cycle = []string{"(cycle detected)"}
		}
		return nil, &CyclicGraphError{Cycle: cycle}
	}
	return sorted, nil
}
