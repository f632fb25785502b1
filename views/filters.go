// Package views derives filtered, sorted, and grouped task lists from a
// store snapshot. Every function is pure: nothing here mutates the store
// or its records, and results are recomputed from the given snapshot on
// every call.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/tasktamer/tasktamer/models"
)

// upcomingWindowDays is the inclusive look-ahead window for Upcoming.
const upcomingWindowDays = 7

// Partition splits tasks into active and completed.
func Partition(tasks []models.Task) (active, completed []models.Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}
	return active, completed
}

// FilterByPriority returns the tasks whose priority equals p.
func FilterByPriority(tasks []models.Task, p models.Priority) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// FilterByLabel returns the tasks whose label equals l.
func FilterByLabel(tasks []models.Task, l models.Label) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Label == l {
			out = append(out, t)
		}
	}
	return out
}

// FilterByTag returns the tasks carrying the given tag (case-sensitive
// exact match, same rule the store enforces for uniqueness).
func FilterByTag(tasks []models.Task, tag string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.HasTag(tag) {
			out = append(out, t)
		}
	}
	return out
}

// Search returns the tasks whose title or description contains the query
// as a case-insensitive substring.
func Search(tasks []models.Task, query string) []models.Task {
	query = strings.ToLower(query)
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			out = append(out, t)
		}
	}
	return out
}

// BoardColumns is the fixed column order of the board view.
var BoardColumns = models.AllStatuses

// GroupByStatus buckets tasks into the four board columns. Every status
// has an entry in the result, empty columns included.
func GroupByStatus(tasks []models.Task) map[models.Status][]models.Task {
	grouped := make(map[models.Status][]models.Task, len(BoardColumns))
	for _, s := range BoardColumns {
		grouped[s] = []models.Task{}
	}
	for _, t := range tasks {
		grouped[t.Status] = append(grouped[t.Status], t)
	}
	return grouped
}

// sameDay reports whether two times fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay truncates a time to midnight of its calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DueOn returns tasks due on the given calendar day, sorted by priority.
func DueOn(tasks []models.Task, day time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.DueDate != nil && sameDay(*t.DueDate, day) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// Upcoming returns tasks due within the next seven days inclusive of
// today, sorted by due date and then by priority rank.
func Upcoming(tasks []models.Task, today time.Time) []models.Task {
	from := startOfDay(today)
	to := from.AddDate(0, 0, upcomingWindowDays)
	var out []models.Task
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := startOfDay(*t.DueDate)
		if due.Before(from) || due.After(to) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := startOfDay(*out[i].DueDate), startOfDay(*out[j].DueDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// Overdue returns the uncompleted tasks whose due date is strictly before
// today, oldest first. Completed tasks never appear regardless of date.
func Overdue(tasks []models.Task, today time.Time) []models.Task {
	cutoff := startOfDay(today)
	var out []models.Task
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		if startOfDay(*t.DueDate).Before(cutoff) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(*out[j].DueDate)
	})
	return out
}

// GroupByDay buckets tasks by the calendar day of their due date,
// preserving each bucket's input order. Tasks without a due date are
// skipped. Keys are midnight in the due date's location.
func GroupByDay(tasks []models.Task) map[time.Time][]models.Task {
	grouped := make(map[time.Time][]models.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		day := startOfDay(*t.DueDate)
		grouped[day] = append(grouped[day], t)
	}
	return grouped
}
