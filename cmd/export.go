package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exportFs is swappable in tests.
var exportFs = afero.NewOsFs()

// exportCmd writes the full task collection to a JSON file.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all tasks to a JSON file",
	Long: `Export all tasks to a JSON file. Without an argument the export is
written to tasktamer-export-<date>.json in the current directory. The
output uses the same JSON shape as the data file, so an export can be
restored later or imported elsewhere.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		data, err := taskStore.ExportJSON()
		if err != nil {
			return fmt.Errorf("failed to export tasks: %w", err)
		}

		path := fmt.Sprintf("tasktamer-export-%s.json", time.Now().Format("2006-01-02"))
		if len(args) == 1 {
			path = args[0]
		}

		if err := afero.WriteFile(exportFs, path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}

		fmt.Printf("Tasks exported to %s.\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
