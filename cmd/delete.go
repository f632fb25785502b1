package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var deleteYes bool

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID, together with all of its subtasks. If no ID
is provided, an interactive list is shown. A confirmation prompt is displayed
before deletion unless --yes is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer closeStore(taskStore)

	var taskID, taskTitle string

	if len(args) > 0 {
		task, err := resolveTask(taskStore, args[0])
		if err != nil {
			return fmt.Errorf("could not find task '%s': %w", args[0], err)
		}
		taskID, taskTitle = task.ID, task.Title
	} else {
		selected, err := selectTaskInteractive(taskStore, nil, "Select task to delete")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Deletion cancelled.")
				return nil
			}
			if err == ErrNoTasksFound {
				fmt.Println("No tasks available to delete.")
				return nil
			}
			return fmt.Errorf("task selection failed: %w", err)
		}
		taskID, taskTitle = selected.ID, selected.Title
	}

	if !deleteYes {
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete task '%s' (ID: %s) and all its subtasks", taskTitle, shortID(taskID)),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := taskStore.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}

	fmt.Printf("Task '%s' deleted.\n", taskTitle)
	return nil
}
