package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backupCmd copies the data file somewhere safe.
var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Copy the task data file to a destination path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		if err := taskStore.Backup(args[0]); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Printf("Tasks backed up to %s.\n", args[0])
		return nil
	},
}

// restoreCmd replaces the data file with a backup.
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Replace the task data with a backup file",
	Long: `Replace the current task data with the contents of a backup file.
The current data is overwritten, so take a backup first if in doubt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		if err := taskStore.Restore(args[0]); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Printf("Tasks restored from %s.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
