package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tasktamer/tasktamer/store"
)

var subtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"sub"},
	Short:   "Manage a task's subtasks",
	Long: `Manage the subtasks of a task. Subtasks are small, concrete steps
that belong to a parent task; completing the parent marks every subtask
done, while completing an individual subtask leaves the parent alone.`,
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <task_id> <title>",
	Short: "Add a subtask to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args[1:], " "))
		if err := validateTitle(title); err != nil {
			return err
		}
		description, _ := cmd.Flags().GetString("description")

		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		task, err := resolveTask(taskStore, args[0])
		if err != nil {
			return fmt.Errorf("could not find task '%s': %w", args[0], err)
		}

		sub, err := taskStore.AddSubtask(task.ID, title, description)
		if err != nil {
			return fmt.Errorf("failed to add subtask to '%s': %w", task.Title, err)
		}

		fmt.Printf("Subtask added to '%s' (ID: %s).\n", task.Title, shortID(sub.ID))
		return nil
	},
}

var subtaskDoneCmd = &cobra.Command{
	Use:   "done <task_id> <subtask_id>",
	Short: "Toggle a subtask's completion",
	Args:  cobra.ExactArgs(2),
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

		sub, err := taskStore.CompleteSubtask(task.ID, resolveSubtaskID(task, args[1]))
		if err != nil {
			return fmt.Errorf("failed to update subtask: %w", err)
		}

		if sub.Completed {
			fmt.Printf("Subtask '%s' marked as done.\n", sub.Title)
		} else {
			fmt.Printf("Subtask '%s' reopened.\n", sub.Title)
		}
		return nil
	},
}

var subtaskUpdateCmd = &cobra.Command{
	Use:   "update <task_id> <subtask_id>",
	Short: "Update a subtask's title or description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd store.SubtaskUpdate
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			if err := validateTitle(title); err != nil {
				return err
			}
			upd.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			upd.Description = &description
		}
		if upd.Title == nil && upd.Description == nil {
			return fmt.Errorf("nothing to update: pass --title or --description")
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

		sub, err := taskStore.UpdateSubtask(task.ID, resolveSubtaskID(task, args[1]), upd)
		if err != nil {
			return fmt.Errorf("failed to update subtask: %w", err)
		}

		fmt.Printf("Subtask '%s' updated.\n", sub.Title)
		return nil
	},
}

var subtaskDeleteCmd = &cobra.Command{
	Use:     "delete <task_id> <subtask_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a subtask",
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

		if err := taskStore.DeleteSubtask(task.ID, resolveSubtaskID(task, args[1])); err != nil {
			return fmt.Errorf("failed to delete subtask: %w", err)
		}

		fmt.Println("Subtask deleted.")
		return nil
	},
}

var subtaskListCmd = &cobra.Command{
	Use:   "list <task_id>",
	Short: "List a task's subtasks",
	Args:  cobra.ExactArgs(1),
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

		if len(task.Subtasks) == 0 {
			fmt.Printf("Task '%s' has no subtasks.\n", task.Title)
			return nil
		}

		fmt.Printf("Subtasks of '%s':\n", task.Title)
		for _, sub := range task.Subtasks {
			marker := "[ ]"
			if sub.Completed {
				marker = "[x]"
			}
			fmt.Printf("  %s %s  %s\n", marker, shortID(sub.ID), sub.Title)
		}
		return nil
	},
}

func init() {
	subtaskAddCmd.Flags().StringP("description", "d", "", "Description of the subtask")
	subtaskUpdateCmd.Flags().String("title", "", "New title for the subtask")
	subtaskUpdateCmd.Flags().StringP("description", "d", "", "New description for the subtask")

	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskDoneCmd)
	subtaskCmd.AddCommand(subtaskUpdateCmd)
	subtaskCmd.AddCommand(subtaskDeleteCmd)
	subtaskCmd.AddCommand(subtaskListCmd)
	rootCmd.AddCommand(subtaskCmd)
}
