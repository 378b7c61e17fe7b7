package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskfold/taskfold/models"
)

// unblockCmd represents the unblock command
var unblockCmd = &cobra.Command{
	Use:   "unblock [plan] [task]",
	Short: "Move a blocked task back to pending",
	Long:  `Move a blocked task back to pending so it can be scheduled again.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		transitionTask(args, statusChange{
			command:   "unblock",
			target:    models.StatusPending,
			pickLabel: "Select a task to unblock",
			pickFilter: func(t models.Task) bool {
				return t.Status == models.StatusBlocked
			},
			success: "Task '%s' (ID: %s) unblocked and back to pending.",
		})
	},
}

func init() {
	rootCmd.AddCommand(unblockCmd)
}
