package planner

import (
	"fmt"

	"github.com/taskfold/taskfold/models"
)

const (
	// parallelizationFactor is the uniform discount applied to the
	// sequential estimate, assuming roughly 30% of the work can overlap.
	// It is a crude planning heuristic, not a resource-aware schedule.
	parallelizationFactor = 0.7

	// milestoneThresholdHours is the cumulative work that closes a
	// milestone segment.
	milestoneThresholdHours = 4.0
)

// Milestone marks a checkpoint in the execution order. TaskCount is the
// 1-based position of the boundary task in the schedule; CumulativeHours
// is the work accumulated since the previous milestone.
type Milestone struct {
	Name            string  `json:"name" yaml:"name"`
	TaskCount       int     `json:"task_count" yaml:"task_count"`
	CumulativeHours float64 `json:"cumulative_hours" yaml:"cumulative_hours"`
}

// Timeline is the estimate derived from a plan's task graph.
type Timeline struct {
	SequentialHours       float64     `json:"sequential_hours" yaml:"sequential_hours"`
	ParallelEstimateHours float64     `json:"parallel_estimate_hours" yaml:"parallel_estimate_hours"`
	Milestones            []Milestone `json:"milestones" yaml:"milestones"`
	CriticalPath          []string    `json:"critical_path" yaml:"critical_path"`
}

// EstimateTimeline computes duration estimates, milestones and the
// critical path for the given tasks. An empty task list yields a zero
// timeline and no error; an invalid graph returns the scheduling error.
func EstimateTimeline(tasks []models.Task) (Timeline, error) {
	if len(tasks) == 0 {
		return Timeline{Milestones: []Milestone{}, CriticalPath: []string{}}, nil
	}

	sorted, err := Schedule(tasks)
	if err != nil {
		return Timeline{}, err
	}

	totalMinutes := 0
	for i := range sorted {
		totalMinutes += sorted[i].EstimatedMinutes
	}
	sequential := float64(totalMinutes) / 60.0

	return Timeline{
		SequentialHours:       sequential,
		ParallelEstimateHours: sequential * parallelizationFactor,
		Milestones:            identifyMilestones(sorted),
		CriticalPath:          criticalPath(tasks, sorted),
	}, nil
}

// identifyMilestones walks the execution order and closes a segment
// whenever the accumulated work reaches the threshold or a critical task
// lands. The hours counter resets after each boundary.
func identifyMilestones(sorted []models.Task) []Milestone {
	milestones := []Milestone{}
	cumulativeHours := 0.0

	for i := range sorted {
		task := &sorted[i]
		cumulativeHours += float64(task.EstimatedMinutes) / 60.0

		if cumulativeHours >= milestoneThresholdHours || task.Priority == models.PriorityCritical {
			milestones = append(milestones, Milestone{
				Name:            fmt.Sprintf("Milestone %d: %s", len(milestones)+1, task.Title),
				TaskCount:       i + 1,
				CumulativeHours: cumulativeHours,
			})
			cumulativeHours = 0
		}
	}
	return milestones
}

// criticalPath returns the longest dependency chain weighted by estimated
// minutes, as task IDs from the chain's dependency-free root to its
// terminal task.
//
// The computation is a memoized pass over the topological order: by the
// time a task is visited, every dependency already carries its final path
// weight, so each edge is examined once and no recursion is needed. Ties
// are broken toward the task inserted earliest in the plan, keeping the
// result deterministic.
func criticalPath(tasks []models.Task, sorted []models.Task) []string {
	indexByID := make(map[string]int, len(tasks))
	for i := range tasks {
		indexByID[tasks[i].ID] = i
	}

	// pathMinutes[id] is the weight of the heaviest chain ending at id;
	// predecessor[id] is the dependency that chain arrives through.
	pathMinutes := make(map[string]int, len(tasks))
	predecessor := make(map[string]string, len(tasks))

	for i := range sorted {
		task := &sorted[i]
		bestMinutes := 0
		bestDep := ""
		bestIdx := 0
		for _, depID := range task.Dependencies {
			depMinutes := pathMinutes[depID]
			depIdx := indexByID[depID]
			switch {
			case bestDep == "",
				depMinutes > bestMinutes,
				depMinutes == bestMinutes && depIdx < bestIdx:
				bestMinutes, bestDep, bestIdx = depMinutes, depID, depIdx
			}
		}
		pathMinutes[task.ID] = task.EstimatedMinutes + bestMinutes
		if bestDep != "" {
			predecessor[task.ID] = bestDep
		}
	}

	// Terminal of the heaviest chain; iterating in insertion order makes
	// the earliest task win ties.
	endID := ""
	endMinutes := -1
	for i := range tasks {
		id := tasks[i].ID
		if pathMinutes[id] > endMinutes {
			endID = id
			endMinutes = pathMinutes[id]
		}
	}

	var path []string
	for id := endID; id != ""; id = predecessor[id] {
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
