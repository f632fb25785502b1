package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/tasktamer/tasktamer/models"
	"github.com/tasktamer/tasktamer/store"
)

// dueDateLayout is the calendar-day format accepted on the command line.
const dueDateLayout = "2006-01-02"

// Validation of user input happens here at the presentation layer; the
// store accepts whatever it is given.

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	return nil
}

func parsePriority(value string) (models.Priority, error) {
	p := models.Priority(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority '%s' (expected low, medium, high or urgent)", value)
	}
	return p, nil
}

func parseStatus(value string) (models.Status, error) {
	s := models.Status(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid status '%s' (expected todo, in_progress, review or done)", value)
	}
	return s, nil
}

func parseLabel(value string) (models.Label, error) {
	l := models.Label(strings.ToLower(strings.TrimSpace(value)))
	if !l.Valid() {
		return "", fmt.Errorf("invalid label '%s' (expected work, personal, education, health, finance or other)", value)
	}
	return l, nil
}

func parseDueDate(value string) (*time.Time, error) {
	due, err := time.Parse(dueDateLayout, strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("invalid due date '%s' (expected YYYY-MM-DD)", value)
	}
	return &due, nil
}

// closeStore closes the store, surfacing close failures only in verbose mode.
func closeStore(taskStore store.TaskStore) {
	if err := taskStore.Close(); err != nil {
		LogError("failed to close task store", err)
	}
}

// shortID returns the leading segment of a UUID, enough to reference a
// task unambiguously in day-to-day listings.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// resolveSubtaskID expands a subtask ID prefix against the given task. If
// the prefix is ambiguous or matches nothing, the input is returned as-is
// and the store reports the lookup failure.
func resolveSubtaskID(task models.Task, ref string) string {
	var match string
	for _, sub := range task.Subtasks {
		if sub.ID == ref {
			return ref
		}
		if strings.HasPrefix(sub.ID, ref) {
			if match != "" {
				return ref
			}
			match = sub.ID
		}
	}
	if match != "" {
		return match
	}
	return ref
}
