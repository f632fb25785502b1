package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasktamer/tasktamer/internal/ui"
	"github.com/tasktamer/tasktamer/views"
)

// scheduleCmd shows tasks by due date. Without flags it shows today,
// the upcoming week, and anything overdue.
var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"cal"},
	Short:   "Show tasks by due date",
	Long: `Show tasks organized by due date. By default the view covers tasks
due today, tasks due within the next seven days, and overdue tasks.
Pass --date to look at a single calendar day instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateFlag, _ := cmd.Flags().GetString("date")
		upcomingOnly, _ := cmd.Flags().GetBool("upcoming")
		overdueOnly, _ := cmd.Flags().GetBool("overdue")

		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("could not initialize the task store: %w", err)
		}
		defer closeStore(taskStore)

		tasks, err := taskStore.ListTasks(nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		today := time.Now()

		if dateFlag != "" {
			day, err := parseDueDate(dateFlag)
			if err != nil {
				return err
			}
			fmt.Print(ui.ScheduleSection(day.Format(dueDateLayout), views.DueOn(tasks, *day), *day, shortID))
			return nil
		}

		var sections []string
		if !overdueOnly {
			if !upcomingOnly {
				sections = append(sections, ui.ScheduleSection("Today", views.DueOn(tasks, today), today, shortID))
			}
			sections = append(sections, ui.ScheduleSection("Upcoming", views.Upcoming(tasks, today), today, shortID))
		}
		if !upcomingOnly {
			sections = append(sections, ui.ScheduleSection("Overdue", views.Overdue(tasks, today), today, shortID))
		}
		fmt.Print(strings.Join(sections, "\n"))
		return nil
	},
}

func init() {
	scheduleCmd.Flags().String("date", "", "Show tasks due on a specific day (YYYY-MM-DD)")
	scheduleCmd.Flags().Bool("upcoming", false, "Show only the upcoming week")
	scheduleCmd.Flags().Bool("overdue", false, "Show only overdue tasks")
	scheduleCmd.MarkFlagsMutuallyExclusive("date", "upcoming", "overdue")
	rootCmd.AddCommand(scheduleCmd)
}
