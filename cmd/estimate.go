package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// estimateCmd sets the estimated time for a task, in minutes.
var estimateCmd = &cobra.Command{
	Use:   "estimate <task_id> <minutes>",
	Short: "Set the estimated time for a task in minutes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes < 0 {
			return fmt.Errorf("invalid estimate '%s': must be a non-negative number of minutes", args[1])
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

		updated, err := taskStore.SetEstimatedTime(task.ID, minutes)
		if err != nil {
			return fmt.Errorf("failed to set estimate for '%s': %w", task.Title, err)
		}

		fmt.Printf("Task '%s' estimated at %d minutes.\n", updated.Title, updated.EstimatedTime)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}
