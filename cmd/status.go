package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktamer/tasktamer/models"
)

// statusCmd represents the status command. A drag between board columns is
// exactly this operation.
var statusCmd = &cobra.Command{
	Use:   "status <task_id> <status>",
	Short: "Move a task to a workflow stage",
	Long: `Set a task's status (todo, in_progress, review, done). The completed
flag follows the status: done means completed, anything else means not
completed. Subtasks are not touched.

Examples:
  tasktamer status abc123 in_progress
  tasktamer status abc123 done`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer closeStore(taskStore)

	task, err := resolveTask(taskStore, args[0])
	if err != nil {
		return fmt.Errorf("could not find task '%s': %w", args[0], err)
	}

	updated, err := taskStore.ChangeTaskStatus(task.ID, status)
	if err != nil {
		return fmt.Errorf("failed to change status of '%s': %w", task.Title, err)
	}

	if updated.Status == models.StatusDone {
		fmt.Printf("Task '%s' moved to done and marked completed.\n", updated.Title)
	} else {
		fmt.Printf("Task '%s' moved to %s.\n", updated.Title, updated.Status)
	}
	return nil
}
