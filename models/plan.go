package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

// statusTransitions lists the reachable states from each status. Completed
// is terminal.
var statusTransitions = map[TaskStatus][]TaskStatus{
	StatusPending:    {StatusInProgress, StatusBlocked},
	StatusInProgress: {StatusCompleted, StatusBlocked},
	StatusBlocked:    {StatusPending, StatusInProgress},
	StatusCompleted:  {},
}

// CanTransitionTo reports whether a status change from s to next is allowed.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Rank orders priorities for sorting; higher means more urgent.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ParseStatus converts a string into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusBlocked:
		return StatusBlocked, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown status: %q", s)
	}
}

// ParsePriority converts a string into a TaskPriority.
func ParsePriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityCritical:
		return PriorityCritical, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority: %q", s)
	}
}

// Task is a small, time-boxed unit of work inside a plan. Dependencies name
// other task IDs in the same plan that must be completed first.
type Task struct {
	ID                 string       `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title              string       `json:"title" yaml:"title" toml:"title" validate:"required,min=1,max=255"`
	Description        string       `json:"description" yaml:"description" toml:"description"`
	EstimatedMinutes   int          `json:"estimated_minutes" yaml:"estimated_minutes" toml:"estimated_minutes" validate:"required,gt=0"`
	Priority           TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=critical high medium low"`
	Status             TaskStatus   `json:"status" yaml:"status" toml:"status" validate:"required,oneof=pending in_progress blocked completed"`
	Dependencies       []string     `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	AcceptanceCriteria []string     `json:"acceptance_criteria" yaml:"acceptance_criteria" toml:"acceptance_criteria"`
	Risks              []string     `json:"risks" yaml:"risks" toml:"risks"`
	Tags               []string     `json:"tags" yaml:"tags" toml:"tags"`
	CreatedAt          time.Time    `json:"created_at" yaml:"created_at" toml:"created_at"`
}

// EstimatedHours returns the task estimate in hours.
func (t *Task) EstimatedHours() float64 {
	return float64(t.EstimatedMinutes) / 60.0
}

// WorkPlan is an ordered collection of tasks toward a single goal. Task
// order is insertion order and is preserved across save/load; scheduling
// uses it to break ties deterministically.
type WorkPlan struct {
	Name                string    `json:"name" yaml:"name" toml:"name" validate:"required"`
	Goal                string    `json:"goal" yaml:"goal" toml:"goal" validate:"required"`
	TotalEstimatedHours float64   `json:"total_estimated_hours" yaml:"total_estimated_hours" toml:"total_estimated_hours"`
	CreatedAt           time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
	PRDReference        string    `json:"prd_reference" yaml:"prd_reference" toml:"prd_reference"`
	Tasks               []Task    `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
}

// TotalMinutes sums the task estimates.
func (p *WorkPlan) TotalMinutes() int {
	total := 0
	for i := range p.Tasks {
		total += p.Tasks[i].EstimatedMinutes
	}
	return total
}

// RecomputeTotals refreshes the derived TotalEstimatedHours field. Callers
// must invoke it after any change to task estimates; the field is never
// written directly.
func (p *WorkPlan) RecomputeTotals() {
	p.TotalEstimatedHours = float64(p.TotalMinutes()) / 60.0
}

// TaskByID returns a pointer into the plan's task slice, or nil.
func (p *WorkPlan) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask creates a task with defaults applied: pending status, medium
// priority, empty dependency and risk lists.
func NewTask(id, title string, estimatedMinutes int) *Task {
	return &Task{
		ID:                 id,
		Title:              title,
		EstimatedMinutes:   estimatedMinutes,
		Priority:           PriorityMedium,
		Status:             StatusPending,
		Dependencies:       []string{},
		AcceptanceCriteria: []string{},
		Risks:              []string{},
		Tags:               []string{},
		CreatedAt:          time.Now(),
	}
}

// NewWorkPlan creates an empty plan for the given goal.
func NewWorkPlan(name, goal string) *WorkPlan {
	return &WorkPlan{
		Name:      name,
		Goal:      goal,
		CreatedAt: time.Now(),
		Tasks:     []Task{},
	}
}
