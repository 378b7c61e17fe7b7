package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/planner"
	"github.com/taskfold/taskfold/internal/ui"
)

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next [plan]",
	Short: "Show the tasks that are ready to start",
	Long: `Show the pending tasks whose dependencies are all completed, highest
priority first. These are the tasks you can pick up right now.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
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
	available := progress.NextAvailableTasks

	if isJSON() {
		return printJSON(available)
	}

	if len(available) == 0 {
		if progress.TasksCompleted == progress.TasksTotal && progress.TasksTotal > 0 {
			cmd.Printf("🎉 All %d tasks in '%s' are done.\n", progress.TasksTotal, plan.Name)
			return nil
		}
		cmd.Printf("No tasks in '%s' are ready to start.\n", plan.Name)
		if progress.TasksBlocked > 0 {
			cmd.Printf("⚠️ %d task(s) are blocked; 'taskfold unblock' may free them up.\n", progress.TasksBlocked)
		}
		if progress.TasksInProgress > 0 {
			cmd.Printf("%d task(s) are in progress; finish them with 'taskfold done'.\n", progress.TasksInProgress)
		}
		return nil
	}

	cmd.Printf("🎯 Ready to start in '%s':\n", plan.Name)
	for i, t := range available {
		cmd.Println(ui.FormatTaskLine(i+1, t))
	}
	if !isQuiet() {
		cmd.Println("\nStart one with 'taskfold start'.")
	}
	return nil
}
