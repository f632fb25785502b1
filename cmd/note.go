package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// noteCmd appends free-form text to a task's notes.
var noteCmd = &cobra.Command{
	Use:   "note <task_id> <text>",
	Short: "Add a note to a task",
	Long: `Add a note to a task. The text is appended to any existing notes
on its own line.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return fmt.Errorf("note text cannot be empty")
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

		updated, err := taskStore.AddTaskNote(task.ID, text)
		if err != nil {
			return fmt.Errorf("failed to add note to '%s': %w", task.Title, err)
		}

		fmt.Printf("Note added to '%s'.\n", updated.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
