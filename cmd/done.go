package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/models"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [plan] [task]",
	Aliases: []string{"complete", "finish"},
	Short:   "Mark a task as completed",
	Long: `Mark a task as completed. Completion is terminal; a completed task
cannot change status again. After completing, the plan's progress is
shown so newly unblocked tasks are visible right away.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		transitionTask(args, statusChange{
			command:   "done",
			target:    models.StatusCompleted,
			pickLabel: "Select a task to complete",
			pickFilter: func(t models.Task) bool {
				return t.CanTransitionTo(models.StatusCompleted)
			},
			success: "🎉 Task '%s' (ID: %s) marked as done successfully!",
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
