package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/tasktamer/tasktamer/models"
)

// doneCmd represents the done command.
var doneCmd = &cobra.Command{
	Use:     "done [task_id]",
	Aliases: []string{"complete", "d"},
	Short:   "Toggle a task's completion",
	Long: `Toggle a task between completed and not completed. Completing a task
sets its status to done and marks every subtask completed; toggling it back
sets status to todo and clears every subtask's completed flag. If no task_id
is provided, an interactive list of active tasks is shown.`,
	Example: `  # Interactive mode
  tasktamer done

  # Toggle a specific task
  tasktamer done abc123`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer closeStore(taskStore)

	var task models.Task

	if len(args) > 0 {
		task, err = resolveTask(taskStore, args[0])
		if err != nil {
			return fmt.Errorf("could not find task '%s': %w", args[0], err)
		}
	} else {
		notDoneFilter := func(t models.Task) bool {
			return !t.Completed
		}
		task, err = selectTaskInteractive(taskStore, notDoneFilter, "Select task to mark as done")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Operation cancelled.")
				return nil
			}
			if err == ErrNoTasksFound {
				fmt.Println("No active tasks available to mark as done.")
				return nil
			}
			return fmt.Errorf("could not select a task: %w", err)
		}
	}

	toggled, err := taskStore.CompleteTask(task.ID)
	if err != nil {
		return fmt.Errorf("failed to toggle completion of '%s': %w", task.Title, err)
	}

	if toggled.Completed {
		fmt.Printf("🎉 Task '%s' marked as done.\n", toggled.Title)
	} else {
		fmt.Printf("Task '%s' reopened (status: %s).\n", toggled.Title, toggled.Status)
	}
	return nil
}
