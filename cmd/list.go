package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tasktamer/tasktamer/internal/ui"
	"github.com/tasktamer/tasktamer/views"
)

var (
	listPriority  string
	listLabel     string
	listTag       string
	listSearch    string
	listActive    bool
	listCompleted bool
	listByDue     bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered.

Examples:
  tasktamer list
  tasktamer list --priority urgent
  tasktamer list --label work --active
  tasktamer list --search "report"
  tasktamer list --tag errand`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority")
	listCmd.Flags().StringVarP(&listLabel, "label", "l", "", "filter by label")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "filter by tag")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive substring match on title and description")
	listCmd.Flags().BoolVar(&listActive, "active", false, "only active (not completed) tasks")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "only completed tasks")
	listCmd.Flags().BoolVar(&listByDue, "by-due", false, "sort by due date (tasks without one last)")
}

func runList(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("could not initialize the task store: %w", err)
	}
	defer closeStore(taskStore)

	tasks, err := taskStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if listActive || listCompleted {
		active, completed := views.Partition(tasks)
		if listActive {
			tasks = active
		} else {
			tasks = completed
		}
	}
	if listPriority != "" {
		priority, err := parsePriority(listPriority)
		if err != nil {
			return err
		}
		tasks = views.FilterByPriority(tasks, priority)
	}
	if listLabel != "" {
		label, err := parseLabel(listLabel)
		if err != nil {
			return err
		}
		tasks = views.FilterByLabel(tasks, label)
	}
	if listTag != "" {
		tasks = views.FilterByTag(tasks, listTag)
	}
	if listSearch != "" {
		tasks = views.Search(tasks, listSearch)
	}

	if listByDue {
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate, tasks[j].DueDate
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.Before(*dj)
		})
	}

	fmt.Println(ui.TaskList(tasks, shortID))
	return nil
}

// showCmd displays a single task with its subtasks.
var showCmd = &cobra.Command{
	Use:   "show <task_id>",
	Short: "Show a task's full details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		task, err := resolveTask(taskStore, args[0])
		if err != nil {
			return err
		}
		fmt.Print(ui.TaskDetails(task))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
