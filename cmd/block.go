package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/models"
)

// blockCmd represents the block command
var blockCmd = &cobra.Command{
	Use:   "block [plan] [task]",
	Short: "Mark a task as blocked",
	Long: `Mark a task as blocked on something outside the plan. Blocked tasks are
excluded from the ready list until they are unblocked.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		transitionTask(args, statusChange{
			command:   "block",
			target:    models.StatusBlocked,
			pickLabel: "Select a task to block",
			pickFilter: func(t models.Task) bool {
				return t.CanTransitionTo(models.StatusBlocked)
			},
			success: "⛔ Task '%s' (ID: %s) is now blocked.",
		})
	},
}

func init() {
	rootCmd.AddCommand(blockCmd)
}
