package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage task tags",
	Long: `Manage the free-form tags attached to a task. Adding a tag a task
already carries is a no-op; removing a tag that is not present succeeds
silently.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <task_id> <tag>",
	Short: "Add a tag to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := strings.TrimSpace(args[1])
		if tag == "" {
			return fmt.Errorf("tag cannot be empty")
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

		updated, err := taskStore.AddTaskTag(task.ID, tag)
		if err != nil {
			return fmt.Errorf("failed to tag '%s': %w", task.Title, err)
		}

		fmt.Printf("Task '%s' tagged [%s].\n", updated.Title, strings.Join(updated.Tags, ", "))
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:     "rm <task_id> <tag>",
	Aliases: []string{"remove"},
	Short:   "Remove a tag from a task",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		task, err := resolveTask(taskStore, args[0])
		if err != nil {
			return fmt.Errorf("could not find task '%s': %w", args[0], err)
		}

		if err := taskStore.RemoveTaskTag(task.ID, args[1]); err != nil {
			return fmt.Errorf("failed to remove tag from '%s': %w", task.Title, err)
		}

		fmt.Printf("Tag '%s' removed from '%s'.\n", args[1], task.Title)
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	rootCmd.AddCommand(tagCmd)
}
