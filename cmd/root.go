package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taskfold/taskfold/internal/logging"
	"github.com/taskfold/taskfold/internal/memorybank"
	"github.com/taskfold/taskfold/models"
	"github.com/taskfold/taskfold/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOutput switches command output to machine-readable JSON.
	jsonOutput bool
	// quiet suppresses informational output, leaving only results and errors.
	quiet bool
	// ErrNoPlansFound is returned when an interactive selection is attempted but no plans exist.
	ErrNoPlansFound = errors.New("no work plans found")
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks match.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskfold",
	Short: "Taskfold breaks goals into dependency-aware work plans.",
	Long: `Taskfold is a command line work planner. It turns a high-level goal into
a plan of small, time-boxed tasks, tracks their dependencies as a graph,
and derives execution order, timelines, and progress from that graph.

Plans live as plain files under your project's memory-bank directory, so
they travel with the repository.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetVersion returns the application version string.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskfold/.taskfold.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// GetStore initializes and returns the plan store using the unified types.AppConfig.
func GetStore() (store.PlanStore, error) {
	s := store.NewFilePlanStore()
	config := GetConfig()

	err := s.Initialize(map[string]string{
		"plansDir":       config.Project.PlansDir,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize plan store at %s: %w", config.Project.PlansDir, err)
	}
	return s, nil
}

// GetBank returns the memory bank rooted at the configured bank directory.
func GetBank() *memorybank.Bank {
	return memorybank.NewOsBank(GetConfig().Project.BankDir)
}

// NewLogger opens the structured plan-mutation log under the project dir.
// Callers that cannot open it fall back to a no-op logger rather than fail.
func NewLogger() *logging.Logger {
	config := GetConfig()
	dir := config.Project.LogDir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(config.Project.RootDir, dir)
	}
	logger, err := logging.New(dir, config.Project.LogLevel)
	if err != nil {
		LogError("could not open plan log", err)
		return logging.Nop()
	}
	return logger
}

// selectPlanInteractive presents a prompt to select a plan from the store.
func selectPlanInteractive(planStore store.PlanStore, label string) (*models.WorkPlan, error) {
	plans, err := planStore.ListPlans()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for selection: %w", err)
	}
	if len(plans) == 0 {
		return nil, ErrNoPlansFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Name | cyan }} ({{ len .Tasks }} tasks, {{ printf "%.1f" .TotalEstimatedHours }}h)`,
		Inactive: `  {{ .Name | faint }} ({{ len .Tasks }} tasks)`,
		Selected: `{{ "✔" | green }} {{ .Name | faint }}`,
		Details: `
--------- Plan Details ----------
{{ "Name:\t" | faint }} {{ .Name }}
{{ "Goal:\t" | faint }} {{ .Goal }}
{{ "Tasks:\t" | faint }} {{ len .Tasks }}
{{ "Hours:\t" | faint }} {{ printf "%.1f" .TotalEstimatedHours }}`,
	}

	searcher := func(input string, index int) bool {
		plan := plans[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(plan.Name), input) ||
			strings.Contains(strings.ToLower(plan.Goal), input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     plans,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return nil, err // Return error as is (includes promptui.ErrInterrupt)
	}
	return plans[i], nil
}

// selectTaskInteractive presents a prompt to select a task from a plan.
// It can be filtered using the provided filter function.
func selectTaskInteractive(plan *models.WorkPlan, filterFn func(models.Task) bool, label string) (models.Task, error) {
	tasks := make([]models.Task, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Priority:\t" | faint }} {{ .Priority }}
{{ "Minutes:\t" | faint }} {{ .EstimatedMinutes }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		name := strings.ToLower(task.Title)
		id := task.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	return tasks[i], nil
}
