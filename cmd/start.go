package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/models"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:     "start [plan] [task]",
	Aliases: []string{"begin"},
	Short:   "Start working on a task",
	Long: `Move a task to in_progress. With no arguments the current plan is used
and a picker lists the tasks that can be started.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		transitionTask(args, statusChange{
			command:   "start",
			target:    models.StatusInProgress,
			pickLabel: "Select a task to start",
			pickFilter: func(t models.Task) bool {
				return t.CanTransitionTo(models.StatusInProgress)
			},
			success: "🚀 Started task '%s' (ID: %s).",
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
