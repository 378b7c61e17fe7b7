package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/builder"
)

// breakdownCmd represents the breakdown command
var breakdownCmd = &cobra.Command{
	Use:   "breakdown <minutes|description>",
	Short: "Break a large task into smaller subtasks",
	Long: `Estimate how long a task will take and, if it exceeds the target size,
break it down into smaller subtasks interactively.

The argument is either a task description (its size is estimated from the
wording) or a plain minute count. With --plan, the resulting subtasks are
appended to that plan. With --review, the time estimates of an existing
plan are checked against the configured bounds instead.`,
	Example: `  # Estimate and split a described task
  taskfold breakdown "Refactor the payment pipeline"

  # Split a known 120 minute chunk into ≤30 minute pieces
  taskfold breakdown 120 --max 30

  # Append the pieces to a plan
  taskfold breakdown "Integrate the search service" --plan build_rest_api

  # Review a plan's estimates
  taskfold breakdown --review build_rest_api`,
	Args: cobra.ArbitraryArgs,
	RunE: runBreakdown,
}

var (
	breakdownMax    int
	breakdownPlan   string
	breakdownReview bool
)

func init() {
	rootCmd.AddCommand(breakdownCmd)

	breakdownCmd.Flags().IntVar(&breakdownMax, "max", builder.DefaultSubtaskMinutes, "maximum minutes per subtask")
	breakdownCmd.Flags().StringVar(&breakdownPlan, "plan", "", "append the subtasks to this plan")
	breakdownCmd.Flags().BoolVar(&breakdownReview, "review", false, "review the time estimates of a plan instead")
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	if breakdownReview {
		return runEstimateReview(cmd, args)
	}

	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		return fmt.Errorf("provide a task description or a minute count")
	}

	description := input
	minutes, err := strconv.Atoi(input)
	if err == nil {
		if minutes <= 0 {
			return fmt.Errorf("minutes must be positive, got %d", minutes)
		}
		description = "Task"
	} else {
		minutes = builder.EstimateComplexity(description)
	}

	if !isJSON() {
		fmt.Printf("🔨 Breaking down task: %s\n", description)
		fmt.Printf("Target: Subtasks ≤ %d minutes each\n\n", breakdownMax)
	}

	if minutes <= breakdownMax {
		if isJSON() {
			return printJSON(breakdownResponse{
				Input:            input,
				EstimatedMinutes: minutes,
				MaxMinutes:       breakdownMax,
				NeedsBreakdown:   false,
			})
		}
		fmt.Println("✅ Task is already appropriately sized")
		fmt.Printf("Estimated at %d minutes.\n", minutes)
		return nil
	}

	if isJSON() {
		// The split itself is interactive; in JSON mode only report the verdict.
		return printJSON(breakdownResponse{
			Input:            input,
			EstimatedMinutes: minutes,
			MaxMinutes:       breakdownMax,
			NeedsBreakdown:   true,
		})
	}

	fmt.Printf("Task estimated at %d minutes - needs breakdown\n", minutes)

	b := builder.New(description)
	var planSaver func(subtasks int) error
	if breakdownPlan != "" {
		planStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = planStore.Close() }()

		plan, err := resolvePlan(planStore, breakdownPlan, "Select a plan")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
		b = builder.FromPlan(plan)
		planSaver = func(subtasks int) error {
			if _, err := b.Build(); err != nil {
				return fmt.Errorf("plan failed validation, not saved: %w", err)
			}
			if err := savePlan(planStore, plan, "breakdown", "subtasks_added", subtasks); err != nil {
				return fmt.Errorf("failed to save plan '%s': %w", plan.Name, err)
			}
			fmt.Printf("Added to plan '%s'.\n", plan.Name)
			return nil
		}
	}

	before := b.Len()
	if err := splitLargeTask(b, description, minutes, breakdownMax); err != nil {
		if err == promptui.ErrInterrupt {
			fmt.Println("Operation cancelled.")
			return nil
		}
		return err
	}

	subtasks := b.Tasks()[before:]
	if len(subtasks) == 0 {
		fmt.Println("No subtasks created.")
		return nil
	}

	fmt.Printf("\n✅ Created %d subtasks:\n", len(subtasks))
	for _, t := range subtasks {
		fmt.Printf("  - %s (%dmin)\n", t.Title, t.EstimatedMinutes)
	}

	if planSaver != nil {
		return planSaver(len(subtasks))
	}
	return nil
}

// runEstimateReview checks a plan's estimates against the configured bounds.
func runEstimateReview(cmd *cobra.Command, args []string) error {
	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	planArg := ""
	if len(args) > 0 {
		planArg = args[0]
	}
	plan, err := resolvePlan(planStore, planArg, "Select a plan to review")
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

	config := GetConfig()
	review := estimateReview(plan.Name, plan.Tasks, config.Planner.MaxTaskMinutes, config.Planner.MinTaskMinutes)

	if isJSON() {
		return printJSON(review)
	}

	cmd.Printf("⏱️ Time Estimate Review for %s:\n", plan.Name)
	if len(review.Oversized) == 0 && len(review.Undersized) == 0 {
		cmd.Printf("✅ All %d estimates are between %d and %d minutes.\n",
			review.Stats.Total, review.MinMinutes, review.MaxMinutes)
		return nil
	}
	if len(review.Oversized) > 0 {
		cmd.Println("These tasks might be too large:")
		for _, f := range review.Oversized {
			cmd.Printf("  - %s: %d minutes (%s)\n", f.Title, f.EstimatedMinutes, f.Suggestion)
		}
	}
	if len(review.Undersized) > 0 {
		cmd.Println("These tasks might be too small (consider combining):")
		for _, f := range review.Undersized {
			cmd.Printf("  - %s: %d minutes\n", f.Title, f.EstimatedMinutes)
		}
	}
	return nil
}
