package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/ui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show [plan] [task]",
	Aliases: []string{"view", "get"},
	Short:   "Show a work plan or a single task",
	Long: `Show the full contents of a work plan, or the details of one task when a
task ID (or unique ID prefix) is given as the second argument.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to show")
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

	if len(args) == 2 {
		idx, err := findTask(plan, args[1])
		if err != nil {
			return err
		}
		task := plan.Tasks[idx]
		if isJSON() {
			return printJSON(task)
		}
		cmd.Print(ui.RenderTaskDetail(task))
		return nil
	}

	if isJSON() {
		return printJSON(plan)
	}

	cmd.Print(ui.RenderPlanHeader(plan))
	cmd.Println()
	cmd.Print(ui.RenderTaskTable(plan.Tasks))
	return nil
}
