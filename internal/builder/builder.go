// Package builder assembles work plans from raw task inputs.
//
// The builder performs no I/O. Interactive flows under cmd collect answers,
// convert them into TaskInput values and feed them here; Build runs full
// dependency-graph validation before handing the plan over for persistence.
package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/internal/util"
	"github.com/taskfold/taskfold/models"
)

// TaskInput is the raw material for one task. Zero-value fields are filled
// with defaults: the description from the title, the estimate from
// EstimateComplexity, medium priority.
type TaskInput struct {
	Title              string
	Description        string
	EstimatedMinutes   int
	Priority           models.TaskPriority
	AcceptanceCriteria []string
	Risks              []string
}

// PlanBuilder accumulates tasks for one work plan. Dependencies are wired by
// ID once the referenced tasks exist; Build validates the whole graph and
// returns the finished plan.
type PlanBuilder struct {
	plan *models.WorkPlan
}

// New starts a plan for the given goal. The plan name is derived from the
// goal with a date suffix; SetName overrides it.
func New(goal string) *PlanBuilder {
	return &PlanBuilder{
		plan: models.NewWorkPlan(GeneratePlanName(goal, time.Now()), goal),
	}
}

// FromPlan wraps an existing plan so further tasks and dependencies can be
// added to it. The builder mutates the plan in place.
func FromPlan(plan *models.WorkPlan) *PlanBuilder {
	return &PlanBuilder{plan: plan}
}

// SetName overrides the generated plan name.
func (b *PlanBuilder) SetName(name string) {
	b.plan.Name = name
}

// SetPRDReference links the plan to a PRD document in the memory bank.
func (b *PlanBuilder) SetPRDReference(ref string) {
	b.plan.PRDReference = ref
}

// Name returns the current plan name.
func (b *PlanBuilder) Name() string {
	return b.plan.Name
}

// Len returns the number of accumulated tasks.
func (b *PlanBuilder) Len() int {
	return len(b.plan.Tasks)
}

// Tasks returns a copy of the accumulated tasks in insertion order.
func (b *PlanBuilder) Tasks() []models.Task {
	out := make([]models.Task, len(b.plan.Tasks))
	copy(out, b.plan.Tasks)
	return out
}

// AddTask fills in defaults, validates the task and appends it to the plan.
// The returned copy carries the generated ID, which later SetDependencies
// calls refer to.
func (b *PlanBuilder) AddTask(input TaskInput) (models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, fmt.Errorf("task title is required")
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = title
	}

	minutes := input.EstimatedMinutes
	if minutes <= 0 {
		minutes = EstimateComplexity(description)
	}

	task := models.NewTask(util.NewTaskID(), title, minutes)
	task.Description = description
	task.Tags = ExtractTags(description)
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if len(input.AcceptanceCriteria) > 0 {
		task.AcceptanceCriteria = input.AcceptanceCriteria
	}
	if len(input.Risks) > 0 {
		task.Risks = input.Risks
	}

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("invalid task %q: %w", title, err)
	}

	b.plan.Tasks = append(b.plan.Tasks, *task)
	return *task, nil
}

// SetDependencies replaces the dependency list of a task. Every ID must name
// a task already in the plan, and a task cannot depend on itself. Cycles
// spanning several tasks are caught later, by Build.
func (b *PlanBuilder) SetDependencies(taskID string, depIDs []string) error {
	task := b.plan.TaskByID(taskID)
	if task == nil {
		return fmt.Errorf("task %s is not in the plan", taskID)
	}

	deps := make([]string, 0, len(depIDs))
	for _, dep := range depIDs {
		if dep == taskID {
			return fmt.Errorf("task %s cannot depend on itself", taskID)
		}
		if b.plan.TaskByID(dep) == nil {
			return fmt.Errorf("dependency %s is not in the plan", dep)
		}
		deps = append(deps, dep)
	}

	task.Dependencies = deps
	return nil
}

// SetRisks replaces the risk list of a task already in the plan.
func (b *PlanBuilder) SetRisks(taskID string, risks []string) error {
	task := b.plan.TaskByID(taskID)
	if task == nil {
		return fmt.Errorf("task %s is not in the plan", taskID)
	}
	list := make([]string, 0, len(risks))
	for _, r := range risks {
		r = strings.TrimSpace(r)
		if r != "" {
			list = append(list, r)
		}
	}
	task.Risks = list
	return nil
}

// SetEstimate replaces the time estimate of a task already in the plan.
func (b *PlanBuilder) SetEstimate(taskID string, minutes int) error {
	task := b.plan.TaskByID(taskID)
	if task == nil {
		return fmt.Errorf("task %s is not in the plan", taskID)
	}
	if minutes <= 0 {
		return fmt.Errorf("estimate for task %s must be positive, got %d", taskID, minutes)
	}
	task.EstimatedMinutes = minutes
	return nil
}

// Build validates the dependency graph, recomputes plan totals and returns
// the finished plan. The builder should not be reused after a successful
// Build.
func (b *PlanBuilder) Build() (*models.WorkPlan, error) {
	if err := planner.Validate(b.plan.Tasks); err != nil {
		return nil, err
	}
	b.plan.RecomputeTotals()
	return b.plan, nil
}
