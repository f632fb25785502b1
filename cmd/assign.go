package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// assignCmd represents the assign command.
var assignCmd = &cobra.Command{
	Use:   "assign <task_id> <name>",
	Short: "Assign a task to someone",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignee := strings.TrimSpace(strings.Join(args[1:], " "))

		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		task, err := resolveTask(taskStore, args[0])
		if err != nil {
			return fmt.Errorf("could not find task '%s': %w", args[0], err)
		}

		updated, err := taskStore.AssignTask(task.ID, assignee)
		if err != nil {
			return fmt.Errorf("failed to assign '%s': %w", task.Title, err)
		}

		fmt.Printf("Task '%s' assigned to %s.\n", updated.Title, updated.AssignedTo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assignCmd)
}
