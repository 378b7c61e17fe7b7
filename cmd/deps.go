package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/builder"
	"github.com/taskfold/taskfold/internal/util"
	"github.com/taskfold/taskfold/models"
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps [plan] [task]",
	Short: "Edit the dependencies of a task",
	Long: `Review and change which tasks a task depends on.

The new dependency set replaces the old one and the whole plan is
re-validated, so an edit that would introduce a circular or unknown
dependency is rejected before anything is saved.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

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
			return nil
		}
		if err == ErrNoPlansFound {
			fmt.Println("No work plans yet. Create one with 'taskfold new'.")
			return nil
		}
		return err
	}

	var idx int
	if taskArg != "" {
		idx, err = findTask(plan, taskArg)
		if err != nil {
			return fmt.Errorf("could not find task '%s' in plan '%s': %w", taskArg, plan.Name, err)
		}
	} else {
		picked, err := selectTaskInteractive(plan, nil, "Select a task to edit dependencies for")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
		idx, err = findTask(plan, picked.ID)
		if err != nil {
			return err
		}
	}
	task := plan.Tasks[idx]

	fmt.Printf("Task: %s\n", task.Title)
	if len(task.Dependencies) == 0 {
		fmt.Println("Current dependencies: none")
	} else {
		fmt.Printf("Current dependencies: %s\n", strings.Join(shortIDs(task.Dependencies), ", "))
	}

	// All other tasks are candidates, not just earlier ones; the cycle
	// check below keeps the graph sound.
	candidates := make([]models.Task, 0, len(plan.Tasks)-1)
	for i, t := range plan.Tasks {
		if i == idx {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		fmt.Println("The plan has no other tasks to depend on.")
		return nil
	}

	fmt.Println("Other tasks:")
	for i, t := range candidates {
		fmt.Printf("  %d. %s (%s)\n", i+1, t.Title, util.ShortID(t.ID, 0))
	}

	answer, err := promptLine("New dependencies (numbers, comma-separated, or 'none' to clear)", "none")
	if err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Operation cancelled.")
			return nil
		}
		return err
	}
	depIDs := parseDependencyNumbers(answer, candidates)

	b := builder.FromPlan(plan)
	if err := b.SetDependencies(task.ID, depIDs); err != nil {
		return err
	}
	if _, err := b.Build(); err != nil {
		return fmt.Errorf("dependency change rejected: %w", err)
	}
	if err := savePlan(planStore, plan, "deps", "task_id", task.ID, "dependencies", len(depIDs)); err != nil {
		return fmt.Errorf("failed to save plan '%s': %w", plan.Name, err)
	}

	if isJSON() {
		return printJSON(plan.Tasks[idx])
	}
	if len(depIDs) == 0 {
		fmt.Printf("✅ Cleared dependencies for '%s'.\n", task.Title)
	} else {
		fmt.Printf("✅ '%s' now depends on %d task(s).\n", task.Title, len(depIDs))
	}
	return nil
}

// shortIDs trims a list of task IDs to their display form.
func shortIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = util.ShortID(id, 0)
	}
	return out
}
