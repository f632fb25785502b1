package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// clearCmd deletes every task after a confirmation prompt.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		if !skipConfirm {
			prompt := promptui.Prompt{
				Label:     "Delete ALL tasks? This cannot be undone",
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
					fmt.Println("Clear cancelled.")
					return nil
				}
				return fmt.Errorf("confirmation failed: %w", err)
			}
		}

		if err := taskStore.DeleteAllTasks(); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}

		fmt.Println("All tasks deleted.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
