// Package ui renders task collections for the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tasktamer/tasktamer/models"
	"github.com/tasktamer/tasktamer/views"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(30)

	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func renderPriority(p models.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}

// TaskLine renders a single task as a one-line list entry.
func TaskLine(t models.Task, shortID string) string {
	var b strings.Builder
	b.WriteString(checkbox(t.Completed))
	b.WriteString(" ")
	if t.Completed {
		b.WriteString(doneStyle.Render(t.Title))
	} else {
		b.WriteString(titleStyle.Render(t.Title))
	}
	b.WriteString("  ")
	b.WriteString(renderPriority(t.Priority))
	if t.Label != "" {
		b.WriteString(faintStyle.Render(fmt.Sprintf(" #%s", t.Label)))
	}
	if t.DueDate != nil {
		b.WriteString(faintStyle.Render(" due " + t.DueDate.Format("2006-01-02")))
	}
	if len(t.Subtasks) > 0 {
		completed := 0
		for _, sub := range t.Subtasks {
			if sub.Completed {
				completed++
			}
		}
		b.WriteString(faintStyle.Render(fmt.Sprintf(" (%d/%d)", completed, len(t.Subtasks))))
	}
	b.WriteString(faintStyle.Render("  " + shortID))
	return b.String()
}

// TaskList renders tasks as a one-line-per-task listing.
func TaskList(tasks []models.Task, shortID func(string) string) string {
	if len(tasks) == 0 {
		return faintStyle.Render("No tasks.")
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, TaskLine(t, shortID(t.ID)))
	}
	return strings.Join(lines, "\n")
}

// TaskDetails renders a full task record, subtasks included.
func TaskDetails(t models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(t.Title))
	fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("ID:"), t.ID)
	fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Status:"), t.Status)
	fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Priority:"), renderPriority(t.Priority))
	if t.Description != "" {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Description:"), t.Description)
	}
	if t.Label != "" {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Label:"), t.Label)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Due:"), t.DueDate.Format("2006-01-02"))
	}
	if t.AssignedTo != "" {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Assigned to:"), t.AssignedTo)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Tags:"), strings.Join(t.Tags, ", "))
	}
	if t.EstimatedTime > 0 {
		fmt.Fprintf(&b, "%s %dm\n", faintStyle.Render("Estimate:"), t.EstimatedTime)
	}
	if t.Notes != "" {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("Notes:"), t.Notes)
	}
	if len(t.Subtasks) > 0 {
		fmt.Fprintf(&b, "%s\n", faintStyle.Render("Subtasks:"))
		for _, sub := range t.Subtasks {
			fmt.Fprintf(&b, "  %s %s\n", checkbox(sub.Completed), sub.Title)
		}
	}
	return b.String()
}

// columnTitles maps board columns to their display headings.
var columnTitles = map[models.Status]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusReview:     "Review",
	models.StatusDone:       "Done",
}

// Board renders the four status columns side by side.
func Board(grouped map[models.Status][]models.Task, shortID func(string) string) string {
	columns := make([]string, 0, len(views.BoardColumns))
	for _, status := range views.BoardColumns {
		tasks := grouped[status]
		var b strings.Builder
		fmt.Fprintf(&b, "%s (%d)\n", headerStyle.Render(columnTitles[status]), len(tasks))
		if len(tasks) == 0 {
			b.WriteString(faintStyle.Render("—"))
		}
		for _, t := range tasks {
			fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("•"), t.Title)
			b.WriteString(faintStyle.Render(fmt.Sprintf("  %s · %s", renderPriority(t.Priority), shortID(t.ID))))
			b.WriteString("\n")
		}
		columns = append(columns, columnStyle.Render(strings.TrimRight(b.String(), "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// ScheduleSection renders one heading plus its tasks, annotated with how
// far each due date is from today.
func ScheduleSection(heading string, tasks []models.Task, today time.Time, shortID func(string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", headerStyle.Render(heading), len(tasks))
	if len(tasks) == 0 {
		b.WriteString(faintStyle.Render("Nothing here."))
		b.WriteString("\n")
		return b.String()
	}
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	for _, t := range tasks {
		line := TaskLine(t, shortID(t.ID))
		if t.DueDate != nil {
			dy, dm, dd := t.DueDate.Date()
			due := time.Date(dy, dm, dd, 0, 0, 0, 0, today.Location())
			days := int(due.Sub(midnight).Hours() / 24)
			switch {
			case days < 0:
				line += faintStyle.Render(fmt.Sprintf("  %dd overdue", -days))
			case days == 0:
				line += faintStyle.Render("  today")
			default:
				line += faintStyle.Render(fmt.Sprintf("  in %dd", days))
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
