package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/ui"
	"github.com/taskfold/taskfold/types"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "plans"},
	Short:   "List all work plans",
	Long:    `List every stored work plan with its goal, task count, and total estimated hours.`,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	plans, err := planStore.ListPlans()
	if err != nil {
		return err
	}

	if isJSON() {
		summaries := make([]types.PlanSummary, 0, len(plans))
		for _, p := range plans {
			summaries = append(summaries, planSummary(p))
		}
		return printJSON(summaries)
	}

	cmd.Print(ui.RenderPlanList(plans))
	return nil
}
