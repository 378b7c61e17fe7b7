package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/internal/builder"
	"github.com/taskfold/taskfold/internal/ui"
	"github.com/taskfold/taskfold/models"
	"github.com/taskfold/taskfold/store"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:     "new [goal]",
	Aliases: []string{"plan", "create"},
	Short:   "Create a work plan for a goal",
	Long: `Create a comprehensive work plan from a high-level goal.

The goal is analyzed for an initial task breakdown, which you then refine
interactively: titles, time estimates, priorities, acceptance criteria,
dependencies between tasks, and known risks. Oversized estimates can be
split into smaller subtasks on the spot.

The finished plan is validated against circular and unknown dependencies
before it is saved, and becomes the current plan for later commands.`,
	Example: `  # Interactive planning
  taskfold new "Build REST API for billing"

  # Reference a PRD from the memory bank
  taskfold new "Implement checkout" --prd checkout-flow

  # Accept the suggested breakdown without prompts
  taskfold new "Add CSV export" --auto`,
	Args: cobra.ArbitraryArgs,
	RunE: runNew,
}

var (
	newPRD        string // PRD name in the memory bank
	newComplexity string // low, medium, high
	newAuto       bool   // skip interactive refinement
)

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newPRD, "prd", "", "PRD in the memory bank to reference")
	newCmd.Flags().StringVar(&newComplexity, "complexity", "", "expected complexity (low, medium, high)")
	newCmd.Flags().BoolVar(&newAuto, "auto", false, "accept the suggested breakdown without prompting")
}

func runNew(cmd *cobra.Command, args []string) error {
	nonInteractive := newAuto || isJSON()

	goal := strings.TrimSpace(strings.Join(args, " "))
	if goal == "" {
		if nonInteractive {
			return fmt.Errorf("a goal is required when running without prompts")
		}
		prompt := promptui.Prompt{
			Label: "What do you want to accomplish",
			Validate: func(input string) error {
				if len(strings.TrimSpace(input)) < 3 {
					return fmt.Errorf("goal must be at least 3 characters")
				}
				return nil
			},
		}
		value, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
		goal = strings.TrimSpace(value)
	}

	config := GetConfig()
	complexity := strings.ToLower(strings.TrimSpace(newComplexity))
	if complexity == "" {
		complexity = config.Planner.DefaultComplexity
	}
	switch complexity {
	case builder.ComplexityLow, builder.ComplexityMedium, builder.ComplexityHigh:
	default:
		return fmt.Errorf("unknown complexity %q (expected low, medium, or high)", complexity)
	}

	if !isJSON() && !isQuiet() {
		fmt.Println("📋 Work Planner - Creating Comprehensive Plan")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("Goal: %s\n", goal)
		fmt.Printf("Complexity: %s\n", complexity)
		if newPRD != "" {
			fmt.Printf("PRD Reference: %s\n", newPRD)
		}
		fmt.Println()
	}

	bank := GetBank()
	if !nonInteractive && !isQuiet() {
		if projectCtx, err := bank.ProjectContext(); err == nil && projectCtx != "" {
			fmt.Println("📁 Project Context:")
			fmt.Println(projectCtx)
			fmt.Println()
		}
	}
	if newPRD != "" && !isJSON() {
		prdCtx, err := bank.PRDContext(newPRD)
		if err != nil {
			LogError("could not read PRD context", err)
		} else if prdCtx != "" {
			fmt.Println("📄 PRD Context:")
			fmt.Println(prdCtx)
			fmt.Println()
		} else {
			fmt.Printf("⚠️ PRD '%s' not found in the memory bank.\n\n", newPRD)
		}
	}

	b := builder.New(goal)
	if newPRD != "" {
		b.SetPRDReference(newPRD)
	}

	initial := builder.InitialBreakdown(goal, complexity)

	if nonInteractive {
		for _, title := range initial {
			if _, err := b.AddTask(builder.TaskInput{Title: title}); err != nil {
				return err
			}
		}
	} else {
		err := buildPlanInteractively(b, initial, config.Planner.MaxTaskMinutes, config.Planner.MinTaskMinutes)
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			return err
		}
	}

	if b.Len() == 0 {
		return fmt.Errorf("the plan has no tasks")
	}

	plan, err := b.Build()
	if err != nil {
		return fmt.Errorf("plan failed validation: %w", err)
	}

	planStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = planStore.Close() }()

	if err := planStore.CreatePlan(plan); err != nil {
		if errors.Is(err, store.ErrPlanExists) {
			return fmt.Errorf("a plan named '%s' already exists; use 'taskfold add %s' to extend it", plan.Name, plan.Name)
		}
		return fmt.Errorf("failed to save plan: %w", err)
	}
	if err := SetCurrentPlan(plan.Name); err != nil {
		LogError("could not persist current plan", err)
	}

	logger := NewLogger().WithCommand("new").WithPlan(plan.Name)
	logger.Info("plan created", "tasks", len(plan.Tasks), "hours", plan.TotalEstimatedHours)
	_ = logger.Close()

	if isJSON() {
		return printJSON(plan)
	}

	fmt.Printf("\n✅ Work plan created with %d tasks\n", len(plan.Tasks))
	fmt.Printf("📊 Total estimated time: %.1f hours\n", plan.TotalEstimatedHours)
	if !isQuiet() {
		fmt.Println("\n📋 Task Breakdown:")
		fmt.Print(ui.RenderTaskSummary(plan.Tasks))

		fmt.Println("\n💡 What's next?")
		fmt.Printf("   • See the order:  taskfold schedule %s\n", plan.Name)
		fmt.Printf("   • Estimate time:  taskfold timeline %s\n", plan.Name)
		fmt.Printf("   • Start a task:   taskfold start %s\n", plan.Name)
	}
	return nil
}

// buildPlanInteractively runs the four refinement passes in order: task
// refinement, dependency analysis, risk assessment, estimate review.
func buildPlanInteractively(b *builder.PlanBuilder, initial []string, maxMinutes, minMinutes int) error {
	if err := refineTasks(b, initial, maxMinutes); err != nil {
		return err
	}
	if err := collectDependencies(b); err != nil {
		return err
	}
	if err := collectRisks(b); err != nil {
		return err
	}
	return reviewEstimates(b, maxMinutes, minMinutes)
}

// refineTasks walks the suggested breakdown and turns each entry into a
// concrete, time-boxed task, then offers to append extra tasks.
func refineTasks(b *builder.PlanBuilder, initial []string, maxMinutes int) error {
	fmt.Println("📝 Task Breakdown Refinement")
	fmt.Println(strings.Repeat("-", 30))
	fmt.Println("Here's the initial breakdown based on your goal:")
	for i, title := range initial {
		fmt.Printf("  %d. %s\n", i+1, title)
	}
	fmt.Println()
	fmt.Println("Let's refine each task to be specific and time-boxed:")

	for i, suggested := range initial {
		fmt.Printf("\n--- Task %d: %s ---\n", i+1, suggested)

		title, err := promptLine("Refined title (Enter keeps the suggestion)", suggested)
		if err != nil {
			return err
		}
		title = strings.TrimSpace(title)
		if title == "" {
			title = suggested
		}

		description, err := promptLine("Detailed description", title)
		if err != nil {
			return err
		}

		minutes, err := promptMinutes("Estimated minutes (15-45 recommended)", builder.EstimateComplexity(description))
		if err != nil {
			return err
		}

		if minutes > 60 {
			fmt.Println("⚠️ Task might be too large. Consider breaking it down further.")
			split, err := confirmYN("Break down into smaller tasks")
			if err != nil {
				return err
			}
			if split {
				if err := splitLargeTask(b, title, minutes, maxMinutes); err != nil {
					return err
				}
				continue
			}
		}

		priority, err := promptPriority()
		if err != nil {
			return err
		}

		fmt.Println("Acceptance criteria (empty line to finish):")
		criteria, err := collectLines("  Criterion #%d")
		if err != nil {
			return err
		}

		if _, err := b.AddTask(builder.TaskInput{
			Title:              title,
			Description:        strings.TrimSpace(description),
			EstimatedMinutes:   minutes,
			Priority:           priority,
			AcceptanceCriteria: criteria,
		}); err != nil {
			return err
		}
	}

	fmt.Println("\nAny additional tasks needed?")
	for {
		title, err := promptLine("Additional task (empty or 'done' to finish)", "")
		if err != nil {
			return err
		}
		title = strings.TrimSpace(title)
		if title == "" || strings.EqualFold(title, "done") {
			break
		}
		minutes, err := promptMinutes("Estimated minutes", builder.DefaultSubtaskMinutes)
		if err != nil {
			return err
		}
		if _, err := b.AddTask(builder.TaskInput{Title: title, EstimatedMinutes: minutes}); err != nil {
			return err
		}
	}
	return nil
}

// splitLargeTask walks a SplitBudget interactively, adding one subtask per
// piece until the remainder fits within the budget. The final remainder is
// offered as its own subtask and dropped if the user skips it.
func splitLargeTask(b *builder.PlanBuilder, title string, minutes, maxMinutes int) error {
	budget := builder.NewSplitBudget(title, minutes, maxMinutes)
	fmt.Printf("Breaking down: %s (%d minutes)\n", title, minutes)

	for n := 1; budget.NeedsSplit(); n++ {
		fmt.Printf("\nSubtask %d:\n", n)
		subtitle, err := promptLine("Subtask title", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(subtitle) == "" {
			subtitle = fmt.Sprintf("Part %d", n)
		}
		subMinutes, err := promptMinutes("Estimated minutes", budget.NextDefault())
		if err != nil {
			return err
		}
		if _, err := b.AddTask(budget.Take(subtitle, subMinutes)); err != nil {
			return err
		}
	}

	if budget.Remaining > 0 {
		final, err := promptLine(fmt.Sprintf("Final subtask (%d min, empty to skip)", budget.Remaining), "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(final) != "" {
			if _, err := b.AddTask(budget.Take(final, budget.Remaining)); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectDependencies asks, for every task after the first, which earlier
// tasks it depends on. Answers are indexes into the listing; anything
// unparsable is skipped.
func collectDependencies(b *builder.PlanBuilder) error {
	tasks := b.Tasks()
	if len(tasks) < 2 {
		return nil
	}

	fmt.Println("\n🔗 Dependency Analysis")
	fmt.Println("Let's identify task dependencies to create the optimal sequence.")

	for i := 1; i < len(tasks); i++ {
		fmt.Printf("\nTask: %s\n", tasks[i].Title)
		fmt.Println("Previous tasks:")
		for j := 0; j < i; j++ {
			fmt.Printf("  %d. %s\n", j+1, tasks[j].Title)
		}

		answer, err := promptLine("Dependencies (numbers, comma-separated, or 'none')", "none")
		if err != nil {
			return err
		}
		depIDs := parseDependencyNumbers(answer, tasks[:i])
		if len(depIDs) == 0 {
			continue
		}
		if err := b.SetDependencies(tasks[i].ID, depIDs); err != nil {
			return err
		}
	}
	return nil
}

// parseDependencyNumbers maps a "1,3" style answer onto task IDs from the
// candidates listing. Out-of-range and non-numeric entries are ignored.
func parseDependencyNumbers(answer string, candidates []models.Task) []string {
	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, "none") {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(answer, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if n < 1 || n > len(candidates) {
			continue
		}
		ids = append(ids, candidates[n-1].ID)
	}
	return ids
}

// collectRisks asks for potential risks and blockers per task.
func collectRisks(b *builder.PlanBuilder) error {
	fmt.Println("\n⚠️ Risk Assessment")
	fmt.Println("Let's identify potential risks and blockers.")

	for _, task := range b.Tasks() {
		fmt.Printf("\nTask: %s\n", task.Title)
		fmt.Println("Potential risks (empty line to finish):")
		risks, err := collectLines("  Risk #%d")
		if err != nil {
			return err
		}
		if len(risks) == 0 {
			continue
		}
		if err := b.SetRisks(task.ID, risks); err != nil {
			return err
		}
	}
	return nil
}

// reviewEstimates flags estimates outside the configured bounds and offers
// to adjust the oversized ones.
func reviewEstimates(b *builder.PlanBuilder, maxMinutes, minMinutes int) error {
	fmt.Println("\n⏱️ Time Estimate Validation")
	review := estimateReview(b.Name(), b.Tasks(), maxMinutes, minMinutes)

	if len(review.Oversized) > 0 {
		fmt.Println("These tasks might be too large:")
		for _, f := range review.Oversized {
			fmt.Printf("  - %s: %d minutes\n", f.Title, f.EstimatedMinutes)
		}
		adjust, err := confirmYN("Would you like to adjust any estimates")
		if err != nil {
			return err
		}
		if adjust {
			for _, f := range review.Oversized {
				minutes, err := promptMinutes(fmt.Sprintf("New estimate for '%s'", f.Title), f.EstimatedMinutes)
				if err != nil {
					return err
				}
				if err := b.SetEstimate(f.TaskID, minutes); err != nil {
					return err
				}
			}
		}
	}

	if len(review.Undersized) > 0 {
		fmt.Println("These tasks might be too small (consider combining):")
		for _, f := range review.Undersized {
			fmt.Printf("  - %s: %d minutes\n", f.Title, f.EstimatedMinutes)
		}
	}
	return nil
}

// promptLine asks for a single line of input. An empty default means an
// empty answer is allowed.
func promptLine(label, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	return prompt.Run()
}

// promptMinutes asks for a positive whole number of minutes.
func promptMinutes(label string, defaultValue int) (int, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(defaultValue),
		Validate: func(input string) error {
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil {
				return fmt.Errorf("enter a number of minutes")
			}
			if n <= 0 {
				return fmt.Errorf("minutes must be positive")
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(value))
	return n, nil
}

// promptPriority selects a task priority, defaulting to medium.
func promptPriority() (models.TaskPriority, error) {
	prompt := promptui.Select{
		Label:     "Priority",
		Items:     []string{"critical", "high", "medium", "low"},
		CursorPos: 2,
		Size:      4,
	}
	_, value, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return models.ParsePriority(value)
}

// confirmYN asks a yes/no question; answering no is not an error.
func confirmYN(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// collectLines gathers input lines until an empty one. The label format
// receives the 1-based line number.
func collectLines(labelFormat string) ([]string, error) {
	var lines []string
	for {
		prompt := promptui.Prompt{Label: fmt.Sprintf(labelFormat, len(lines)+1)}
		line, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				return nil, err
			}
			return lines, nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}
