package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/internal/ui"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:     "timeline [plan]",
	Aliases: []string{"estimate"},
	Short:   "Estimate how long a plan will take",
	Long: `Estimate the plan's duration: the sequential total, an estimate assuming
some tasks run in parallel, milestone boundaries roughly every four
hours of work, and the dependency chain that dominates the schedule.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to estimate")
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

	timeline, err := planner.EstimateTimeline(plan.Tasks)
	if err != nil {
		return fmt.Errorf("cannot estimate timeline for '%s': %w", plan.Name, err)
	}

	if isJSON() {
		return printJSON(timeline)
	}

	cmd.Printf("📋 Plan: %s\n\n", plan.Name)
	cmd.Print(ui.RenderTimeline(&timeline))
	return nil
}
