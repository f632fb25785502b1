package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasktamer/tasktamer/internal/ui"
	"github.com/tasktamer/tasktamer/views"
)

// boardCmd renders the kanban view: one column per workflow status. Moving
// a card between columns is the `status` command.
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show tasks on a kanban board grouped by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		tasks, err := taskStore.ListTasks(nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		fmt.Println(ui.Board(views.GroupByStatus(tasks), shortID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
