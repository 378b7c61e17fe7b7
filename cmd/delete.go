package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [plan]",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a work plan",
	Long: `Delete a work plan and its checksum sidecar from the plans directory.
Deletion asks for confirmation unless --yes is given.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to delete")
	if err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Operation cancelled.")
			return nil
		}
		if err == ErrNoPlansFound {
			fmt.Println("No work plans yet. Nothing to delete.")
			return nil
		}
		return err
	}

	if !deleteYes {
		ok := confirmOrAbort(fmt.Sprintf("Delete plan '%s' with %d task(s)? This cannot be undone (y/N): ", plan.Name, len(plan.Tasks)))
		if !ok {
			return nil
		}
	}

	if err := planStore.DeletePlan(plan.Name); err != nil {
		return fmt.Errorf("failed to delete plan '%s': %w", plan.Name, err)
	}

	if GetCurrentPlan() == plan.Name {
		if err := ClearCurrentPlan(); err != nil {
			LogError("could not clear current plan", err)
		}
	}

	logger := NewLogger().WithCommand("delete").WithPlan(plan.Name)
	logger.Info("plan deleted")
	_ = logger.Close()

	if isJSON() {
		return printJSON(map[string]string{"status": "deleted", "name": plan.Name})
	}
	cmd.Printf("🗑️ Deleted plan '%s'.\n", plan.Name)
	return nil
}
