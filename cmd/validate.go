package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/planner"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [plan]",
	Short: "Check a plan's dependency graph",
	Long: `Check that every dependency in the plan points at an existing task and
that the dependency graph has no cycles. A cyclic plan can never be
scheduled; the offending cycle is printed so it can be repaired.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to validate")
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

	vErr := planner.Validate(plan.Tasks)

	if isJSON() {
		resp := validationResponse{Plan: plan.Name, Valid: vErr == nil}
		if vErr != nil {
			resp.Error = vErr.Error()
			var cycleErr *planner.CyclicGraphError
			if errors.As(vErr, &cycleErr) {
				resp.Cycle = cycleErr.Cycle
			}
		}
		return printJSON(resp)
	}

	if vErr == nil {
		cmd.Printf("✅ Plan '%s' is valid: %d tasks, no circular dependencies.\n", plan.Name, len(plan.Tasks))
		return nil
	}

	var cycleErr *planner.CyclicGraphError
	if errors.As(vErr, &cycleErr) {
		cmd.Printf("❌ Plan '%s' has a circular dependency:\n", plan.Name)
		cmd.Printf("   %s\n", strings.Join(cycleErr.Cycle, " -> "))
		cmd.Println("Break the cycle with 'taskfold deps' before scheduling.")
		return fmt.Errorf("plan '%s' failed validation", plan.Name)
	}

	var depErr *planner.UnknownDependencyError
	if errors.As(vErr, &depErr) {
		cmd.Printf("❌ Plan '%s' references a missing task:\n", plan.Name)
		cmd.Printf("   task %s depends on unknown task %s\n", depErr.TaskID, depErr.DependencyID)
		cmd.Println("Fix the reference with 'taskfold deps' before scheduling.")
		return fmt.Errorf("plan '%s' failed validation", plan.Name)
	}

	return vErr
}
