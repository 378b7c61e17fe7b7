package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/internal/ui"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:     "schedule [plan]",
	Aliases: []string{"order"},
	Short:   "Show the dependency-respecting execution order",
	Long: `Compute an execution order in which every task comes after all of its
dependencies. Tasks that become ready at the same time keep their
original plan order.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to schedule")
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

	ordered, err := planner.Schedule(plan.Tasks)
	if err != nil {
		return fmt.Errorf("plan '%s' cannot be scheduled: %w", plan.Name, err)
	}

	if isJSON() {
		return printJSON(ordered)
	}

	cmd.Printf("📋 Schedule for %s:\n", plan.Name)
	cmd.Print(ui.RenderSchedule(ordered))
	return nil
}
