package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/internal/ui"
	"github.com/taskfold/taskfold/internal/util"
	"github.com/taskfold/taskfold/models"
	"github.com/taskfold/taskfold/store"
)

// resolvePlan loads the plan named by arg. An empty arg falls back to the
// configured current plan, and failing that to an interactive picker.
// Prefixes are accepted anywhere a full plan name is.
func resolvePlan(planStore store.PlanStore, arg, label string) (*models.WorkPlan, error) {
	if arg == "" {
		arg = GetCurrentPlan()
	}
	if arg == "" {
		return selectPlanInteractive(planStore, label)
	}

	names, err := planStore.ListPlanNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	name, err := util.ResolvePlanName(names, arg)
	if err != nil {
		return nil, err
	}
	return planStore.GetPlan(name)
}

// findTask resolves idOrPrefix against the plan's tasks and returns the
// index of the match in plan.Tasks, so callers can mutate it in place.
func findTask(plan *models.WorkPlan, idOrPrefix string) (int, error) {
	ids := make([]string, len(plan.Tasks))
	for i, t := range plan.Tasks {
		ids[i] = t.ID
	}
	id, err := util.ResolveTaskID(ids, idOrPrefix)
	if err != nil {
		return -1, err
	}
	for i := range plan.Tasks {
		if plan.Tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, util.ErrNotFound
}

// savePlan recomputes plan totals, persists the plan, and records the
// mutation in the structured log.
func savePlan(planStore store.PlanStore, plan *models.WorkPlan, command string, logArgs ...any) error {
	plan.RecomputeTotals()
	if err := planStore.SavePlan(plan); err != nil {
		return err
	}
	logger := NewLogger().WithCommand(command).WithPlan(plan.Name)
	defer func() { _ = logger.Close() }()
	logger.Info("plan saved", logArgs...)
	return nil
}

// statusChange describes one status-transition command (start, done,
// block, unblock). The four commands share transitionTask below.
type statusChange struct {
	command    string
	target     models.TaskStatus
	pickLabel  string
	pickFilter func(models.Task) bool
	success    string // printf format receiving title and ID
}

// transitionTask moves one task of a plan to the change's target status and
// saves the plan. args is [plan] [task], both optional; omitted values fall
// back to the current plan and an interactive picker.
func transitionTask(args []string, change statusChange) {
	planStore, err := GetStore()
	if err != nil {
		HandleFatalError("Error: Could not initialize the plan store.", err)
	}
	defer func() {
		if err := planStore.Close(); err != nil {
			HandleFatalError("Failed to close plan store", err)
		}
	}()

	var planArg, taskArg string
	if len(args) > 0 {
		planArg = args[0]
	}
	if len(args) > 1 {
		taskArg = args[1]
	}

	plan, err := resolvePlan(planStore, planArg, "Select a plan")
	if err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Operation cancelled.")
			return
		}
		if err == ErrNoPlansFound {
			fmt.Println("No work plans yet. Create one with 'taskfold new'.")
			return
		}
		HandleFatalError("Error: Could not load the plan.", err)
	}

	var idx int
	if taskArg != "" {
		idx, err = findTask(plan, taskArg)
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: Could not find task '%s' in plan '%s'.", taskArg, plan.Name), err)
		}
	} else {
		picked, err := selectTaskInteractive(plan, change.pickFilter, change.pickLabel)
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return
			}
			if err == ErrNoTasksFound {
				fmt.Printf("No tasks in plan '%s' can move to %s right now.\n", plan.Name, change.target)
				return
			}
			HandleFatalError("Error: Could not select a task.", err)
		}
		idx, err = findTask(plan, picked.ID)
		if err != nil {
			HandleFatalError("Error: Could not locate the selected task.", err)
		}
	}

	task := &plan.Tasks[idx]
	if task.Status == change.target {
		fmt.Printf("Task '%s' (ID: %s) is already %s.\n", task.Title, task.ID, change.target)
		return
	}
	if !task.Status.CanTransitionTo(change.target) {
		HandleFatalError(fmt.Sprintf("Error: Task '%s' cannot move from %s to %s.", task.Title, task.Status, change.target), nil)
	}
	previous := task.Status
	task.Status = change.target

	err = savePlan(planStore, plan, change.command,
		"task_id", task.ID, "from", string(previous), "to", string(change.target))
	if err != nil {
		task.Status = previous
		HandleFatalError(fmt.Sprintf("Error: Failed to save plan '%s'.", plan.Name), err)
	}

	if isJSON() {
		_ = printJSON(statusChangedResponse{
			Plan:   plan.Name,
			TaskID: task.ID,
			Title:  task.Title,
			From:   string(previous),
			To:     string(change.target),
		})
		return
	}

	fmt.Printf(change.success+"\n", task.Title, task.ID)

	// A completed task may have unblocked others; show where the plan stands.
	if change.target == models.StatusCompleted && !isQuiet() {
		progress := planner.TrackProgress(plan.Tasks)
		fmt.Println()
		fmt.Print(ui.RenderProgress(plan.Name, &progress))
	}
}
