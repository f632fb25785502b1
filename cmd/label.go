package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// labelCmd represents the label command.
var labelCmd = &cobra.Command{
	Use:   "label <task_id> <label>",
	Short: "Set a task's label",
	Long: `Set a task's category label (work, personal, education, health,
finance, other).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, err := parseLabel(args[1])
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

		updated, err := taskStore.ChangeTaskLabel(task.ID, label)
		if err != nil {
			return fmt.Errorf("failed to set label on '%s': %w", task.Title, err)
		}

		fmt.Printf("Task '%s' labeled %s.\n", updated.Title, updated.Label)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelCmd)
}
