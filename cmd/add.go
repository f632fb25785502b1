package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	addDescription string
	addPriority    string
	addDueDate     string
	addLabel       string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task. The task starts in status 'todo' with priority medium
unless overridden.

Examples:
  tasktamer add "Write report"
  tasktamer add "Write report" --priority high --due 2026-09-15
  tasktamer add "Pay rent" --label finance`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "priority (low, medium, high, urgent)")
	addCmd.Flags().StringVar(&addDueDate, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addLabel, "label", "l", "", "label (work, personal, education, health, finance, other)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if err := validateTitle(title); err != nil {
		return err
	}

	priority, err := parsePriority(addPriority)
	if err != nil {
		return err
	}

	var dueDate *time.Time
	if addDueDate != "" {
		dueDate, err = parseDueDate(addDueDate)
		if err != nil {
			return err
		}
	}

	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer closeStore(taskStore)

	created, err := taskStore.AddTask(title, addDescription, priority, dueDate)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	if addLabel != "" {
		label, err := parseLabel(addLabel)
		if err != nil {
			return err
		}
		if created, err = taskStore.ChangeTaskLabel(created.ID, label); err != nil {
			return fmt.Errorf("task created but label not set: %w", err)
		}
	}

	fmt.Printf("Task '%s' added (ID: %s).\n", created.Title, shortID(created.ID))
	return nil
}
