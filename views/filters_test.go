package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktamer/tasktamer/models"
)

func taskOn(title string, due time.Time, priority models.Priority) models.Task {
	return models.Task{ID: title, Title: title, DueDate: &due, Priority: priority, Status: models.StatusTodo}
}

func TestPartitionCoversEveryTask(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Completed: false},
		{ID: "b", Completed: true},
		{ID: "c", Completed: false},
	}

	active, completed := Partition(tasks)
	assert.Len(t, active, 2)
	assert.Len(t, completed, 1)
	assert.Equal(t, len(tasks), len(active)+len(completed))
	for _, task := range active {
		assert.False(t, task.Completed)
	}
	for _, task := range completed {
		assert.True(t, task.Completed)
	}
}

func TestFilterByPriorityAndLabel(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Priority: models.PriorityHigh, Label: models.LabelWork},
		{ID: "b", Priority: models.PriorityLow, Label: models.LabelWork},
		{ID: "c", Priority: models.PriorityHigh, Label: models.LabelHealth},
	}

	high := FilterByPriority(tasks, models.PriorityHigh)
	require.Len(t, high, 2)
	assert.Equal(t, "a", high[0].ID)
	assert.Equal(t, "c", high[1].ID)

	work := FilterByLabel(tasks, models.LabelWork)
	require.Len(t, work, 2)
	assert.Equal(t, "a", work[0].ID)
}

func TestFilterByTagIsCaseSensitive(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Tags: []string{"focus"}},
		{ID: "b", Tags: []string{"Focus"}},
	}
	matched := FilterByTag(tasks, "focus")
	require.Len(t, matched, 1)
	assert.Equal(t, "a", matched[0].ID)
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Title: "Write the Report"},
		{ID: "b", Title: "Groceries", Description: "milk, bread, report paper"},
		{ID: "c", Title: "Dentist"},
	}
	matched := Search(tasks, "report")
	require.Len(t, matched, 2)
	assert.Equal(t, "a", matched[0].ID)
	assert.Equal(t, "b", matched[1].ID)
}

func TestGroupByStatusIncludesEmptyColumns(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Status: models.StatusTodo},
		{ID: "b", Status: models.StatusDone},
	}
	grouped := GroupByStatus(tasks)

	require.Len(t, grouped, len(BoardColumns))
	for _, status := range BoardColumns {
		_, ok := grouped[status]
		assert.True(t, ok, "column %s missing", status)
	}
	assert.Len(t, grouped[models.StatusTodo], 1)
	assert.Empty(t, grouped[models.StatusInProgress])
	assert.Empty(t, grouped[models.StatusReview])
	assert.Len(t, grouped[models.StatusDone], 1)
}

func TestDueOnSortsByPriority(t *testing.T) {
	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		taskOn("low", day, models.PriorityLow),
		taskOn("urgent", day.Add(14*time.Hour), models.PriorityUrgent),
		taskOn("other day", day.AddDate(0, 0, 1), models.PriorityUrgent),
		{ID: "undated", Title: "undated"},
	}

	due := DueOn(tasks, day)
	require.Len(t, due, 2)
	assert.Equal(t, "urgent", due[0].Title)
	assert.Equal(t, "low", due[1].Title)
}

func TestUpcomingWindowIsInclusive(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	tasks := []models.Task{
		taskOn("today", today, models.PriorityMedium),
		taskOn("seventh day", today.AddDate(0, 0, 7), models.PriorityMedium),
		taskOn("eighth day", today.AddDate(0, 0, 8), models.PriorityMedium),
		taskOn("yesterday", today.AddDate(0, 0, -1), models.PriorityMedium),
		{ID: "undated", Title: "undated"},
	}

	upcoming := Upcoming(tasks, today)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "today", upcoming[0].Title)
	assert.Equal(t, "seventh day", upcoming[1].Title)
}

func TestUpcomingSortsByDateThenPriority(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	tasks := []models.Task{
		taskOn("tomorrow low", tomorrow, models.PriorityLow),
		taskOn("today medium", today, models.PriorityMedium),
		taskOn("tomorrow urgent", tomorrow, models.PriorityUrgent),
	}

	upcoming := Upcoming(tasks, today)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "today medium", upcoming[0].Title)
	assert.Equal(t, "tomorrow urgent", upcoming[1].Title)
	assert.Equal(t, "tomorrow low", upcoming[2].Title)
}

func TestOverdueExcludesCompletedAndToday(t *testing.T) {
	today := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	lastWeek := today.AddDate(0, 0, -7)
	yesterday := today.AddDate(0, 0, -1)

	doneButLate := taskOn("done late", yesterday, models.PriorityHigh)
	doneButLate.Completed = true

	tasks := []models.Task{
		taskOn("due today", today, models.PriorityHigh),
		taskOn("yesterday", yesterday, models.PriorityLow),
		taskOn("last week", lastWeek, models.PriorityLow),
		doneButLate,
		{ID: "undated", Title: "undated"},
	}

	overdue := Overdue(tasks, today)
	require.Len(t, overdue, 2)
	// Oldest first.
	assert.Equal(t, "last week", overdue[0].Title)
	assert.Equal(t, "yesterday", overdue[1].Title)
	for _, task := range overdue {
		assert.False(t, task.Completed)
	}
}

func TestGroupByDaySkipsUndated(t *testing.T) {
	day := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		taskOn("morning", day.Add(9*time.Hour), models.PriorityMedium),
		taskOn("evening", day.Add(20*time.Hour), models.PriorityMedium),
		{ID: "undated", Title: "undated"},
	}

	grouped := GroupByDay(tasks)
	require.Len(t, grouped, 1)
	bucket := grouped[day]
	require.Len(t, bucket, 2)
	assert.Equal(t, "morning", bucket[0].Title)
	assert.Equal(t, "evening", bucket[1].Title)
}
