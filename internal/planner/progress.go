package planner

import (
	"sort"

	"github.com/taskfold/taskfold/models"
)

// Progress is a point-in-time reading of plan completion. Percentages are
// weighted by estimated minutes, not task counts, so finishing a long
// task moves the needle more than a short one.
type Progress struct {
	CompletionPercentage float64       `json:"completion_percentage" yaml:"completion_percentage"`
	TasksTotal           int           `json:"tasks_total" yaml:"tasks_total"`
	TasksCompleted       int           `json:"tasks_completed" yaml:"tasks_completed"`
	TasksInProgress      int           `json:"tasks_in_progress" yaml:"tasks_in_progress"`
	TasksBlocked         int           `json:"tasks_blocked" yaml:"tasks_blocked"`
	TasksPending         int           `json:"tasks_pending" yaml:"tasks_pending"`
	HoursCompleted       float64       `json:"hours_completed" yaml:"hours_completed"`
	HoursTotal           float64       `json:"hours_total" yaml:"hours_total"`
	NextAvailableTasks   []models.Task `json:"next_available_tasks" yaml:"next_available_tasks"`
}

// TrackProgress summarizes the given tasks. It never fails: an empty task
// list reports zero percent complete with no available tasks.
func TrackProgress(tasks []models.Task) Progress {
	progress := Progress{
		TasksTotal:         len(tasks),
		NextAvailableTasks: []models.Task{},
	}

	completedMinutes := 0
	totalMinutes := 0
	for i := range tasks {
		task := &tasks[i]
		totalMinutes += task.EstimatedMinutes
		switch task.Status {
		case models.StatusCompleted:
			progress.TasksCompleted++
			completedMinutes += task.EstimatedMinutes
		case models.StatusInProgress:
			progress.TasksInProgress++
		case models.StatusBlocked:
			progress.TasksBlocked++
		default:
			progress.TasksPending++
		}
	}

	if totalMinutes > 0 {
		progress.CompletionPercentage = float64(completedMinutes) / float64(totalMinutes) * 100
	}
	progress.HoursCompleted = float64(completedMinutes) / 60.0
	progress.HoursTotal = float64(totalMinutes) / 60.0
	progress.NextAvailableTasks = nextAvailableTasks(tasks)

	return progress
}

// nextAvailableTasks returns the pending tasks whose dependencies are all
// completed, ordered by priority (critical first) with insertion order
// breaking ties.
func nextAvailableTasks(tasks []models.Task) []models.Task {
	completed := make(map[string]bool, len(tasks))
	for i := range tasks {
		if tasks[i].Status == models.StatusCompleted {
			completed[tasks[i].ID] = true
		}
	}

	available := []models.Task{}
	for i := range tasks {
		task := &tasks[i]
		if task.Status != models.StatusPending {
			continue
		}
		ready := true
		for _, depID := range task.Dependencies {
			if !completed[depID] {
				ready = false
				break
			}
		}
		if ready {
			available = append(available, *task)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Priority.Rank() > available[j].Priority.Rank()
	})
	return available
}
