package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktamer/tasktamer/store"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateLabel       string
	updateDueDate     string
	updateClearDue    bool
)

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:   "update <task_id>",
	Short: "Update fields of a task",
	Long: `Update one or more fields of a task. Only given flags are applied;
everything else is left untouched. The ID and creation time never change.

Examples:
  tasktamer update abc123 --title "Write quarterly report"
  tasktamer update abc123 --priority urgent --due 2026-09-15
  tasktamer update abc123 --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority")
	updateCmd.Flags().StringVarP(&updateLabel, "label", "l", "", "new label")
	updateCmd.Flags().StringVar(&updateDueDate, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "remove the due date")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer closeStore(taskStore)

	task, err := resolveTask(taskStore, args[0])
	if err != nil {
		return err
	}

	var updates store.TaskUpdate

	if cmd.Flags().Changed("title") {
		if err := validateTitle(updateTitle); err != nil {
			return err
		}
		updates.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		updates.Description = &updateDescription
	}
	if updatePriority != "" {
		priority, err := parsePriority(updatePriority)
		if err != nil {
			return err
		}
		updates.Priority = &priority
	}
	if updateLabel != "" {
		label, err := parseLabel(updateLabel)
		if err != nil {
			return err
		}
		updates.Label = &label
	}
	if updateClearDue {
		updates.ClearDueDate = true
	} else if updateDueDate != "" {
		due, err := parseDueDate(updateDueDate)
		if err != nil {
			return err
		}
		updates.DueDate = due
	}

	updated, err := taskStore.UpdateTask(task.ID, updates)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task '%s' updated.\n", updated.Title)
	return nil
}
