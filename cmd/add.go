package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/builder"
	"github.com/taskfold/taskfold/internal/ui"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [plan]",
	Short: "Add tasks to an existing plan",
	Long: `Append tasks to an existing work plan.

Each new task goes through the same refinement as during plan creation:
title, description, time estimate, priority, acceptance criteria, and
dependencies on any task already in the plan. The extended plan is
re-validated before it is saved.`,
	Example: `  # Add to a plan by name or prefix
  taskfold add build_rest_api

  # Add to the current plan
  taskfold add`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to extend")
	if err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Operation cancelled.")
			return nil
		}
		if err == ErrNoPlansFound {
			fmt.Println("No work plans yet. Create one with 'taskfold new'.")
			return nil
		}
		return err
	}

	fmt.Print(ui.RenderPlanHeader(plan))
	fmt.Println()

	b := builder.FromPlan(plan)
	added := 0

	for {
		title, err := promptLine("New task title (empty or 'done' to finish)", "")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
		title = strings.TrimSpace(title)
		if title == "" || strings.EqualFold(title, "done") {
			break
		}

		description, err := promptLine("Detailed description", title)
		if err != nil {
			return err
		}
		minutes, err := promptMinutes("Estimated minutes (15-45 recommended)", builder.EstimateComplexity(description))
		if err != nil {
			return err
		}
		priority, err := promptPriority()
		if err != nil {
			return err
		}
		fmt.Println("Acceptance criteria (empty line to finish):")
		criteria, err := collectLines("  Criterion #%d")
		if err != nil {
			return err
		}

		task, err := b.AddTask(builder.TaskInput{
			Title:              title,
			Description:        strings.TrimSpace(description),
			EstimatedMinutes:   minutes,
			Priority:           priority,
			AcceptanceCriteria: criteria,
		})
		if err != nil {
			PrintError(fmt.Sprintf("Could not add task: %v", err), err)
			continue
		}
		added++

		tasks := b.Tasks()
		if len(tasks) > 1 {
			fmt.Println("Existing tasks:")
			for j, t := range tasks[:len(tasks)-1] {
				fmt.Printf("  %d. %s\n", j+1, t.Title)
			}
			answer, err := promptLine("Dependencies (numbers, comma-separated, or 'none')", "none")
			if err != nil {
				return err
			}
			depIDs := parseDependencyNumbers(answer, tasks[:len(tasks)-1])
			if len(depIDs) > 0 {
				if err := b.SetDependencies(task.ID, depIDs); err != nil {
					return err
				}
			}
		}
	}

	if added == 0 {
		fmt.Println("No tasks added.")
		return nil
	}

	if _, err := b.Build(); err != nil {
		return fmt.Errorf("plan failed validation, not saved: %w", err)
	}
	if err := savePlan(planStore, plan, "add", "tasks_added", added); err != nil {
		return fmt.Errorf("failed to save plan '%s': %w", plan.Name, err)
	}

	if isJSON() {
		return printJSON(plan)
	}
	fmt.Printf("\n✅ Added %d task(s) to '%s' (now %d tasks, %.1f hours)\n",
		added, plan.Name, len(plan.Tasks), plan.TotalEstimatedHours)
	return nil
}
