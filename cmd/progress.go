package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/internal/ui"
)

// progressCmd represents the progress command
var progressCmd = &cobra.Command{
	Use:     "progress [plan]",
	Aliases: []string{"status"},
	Short:   "Show how far along a plan is",
	Long: `Show the plan's completion percentage weighted by estimated minutes,
task counts per status, and the tasks that are ready to start now.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
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

	progress := planner.TrackProgress(plan.Tasks)

	if isJSON() {
		return printJSON(progress)
	}

	cmd.Print(ui.RenderProgress(plan.Name, &progress))
	return nil
}
