package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(uuid.NewString(), "fresh")

	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.Status != StatusTodo {
		t.Errorf("expected status todo, got %s", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("expected priority medium, got %s", task.Priority)
	}
	if task.Subtasks == nil || len(task.Subtasks) != 0 {
		t.Errorf("expected empty subtask list, got %v", task.Subtasks)
	}
	if task.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNormalizeDerivesStatus(t *testing.T) {
	tests := []struct {
		name      string
		completed bool
		want      Status
	}{
		{"completed record", true, StatusDone},
		{"open record", false, StatusTodo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Completed: tt.completed}
			task.Normalize()
			if task.Status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, task.Status)
			}
			if task.Priority != PriorityMedium {
				t.Errorf("expected default priority medium, got %s", task.Priority)
			}
			if task.Subtasks == nil {
				t.Error("expected subtasks initialized to empty slice")
			}
		})
	}
}

func TestNormalizeKeepsExistingStatus(t *testing.T) {
	task := Task{Status: StatusReview, Priority: PriorityHigh}
	task.Normalize()
	if task.Status != StatusReview {
		t.Errorf("existing status overwritten: %s", task.Status)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("existing priority overwritten: %s", task.Priority)
	}
}

func TestPriorityRankOrder(t *testing.T) {
	ordered := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("%s should rank before %s", ordered[i-1], ordered[i])
		}
	}
	if Priority("bogus").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priorities must sort last")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("status %s should be valid", s)
		}
	}
	if Status("cancelled").Valid() {
		t.Error("unknown status accepted")
	}
	if Priority("asap").Valid() {
		t.Error("unknown priority accepted")
	}
	if !LabelFinance.Valid() {
		t.Error("finance label rejected")
	}
	if Label("chores").Valid() {
		t.Error("unknown label accepted")
	}
}

func TestHasTag(t *testing.T) {
	task := Task{Tags: []string{"deep-work", "Urgent"}}
	if !task.HasTag("deep-work") {
		t.Error("expected tag match")
	}
	// Matching is case-sensitive.
	if task.HasTag("urgent") {
		t.Error("tag matching must be case-sensitive")
	}
}

func TestFindSubtask(t *testing.T) {
	task := Task{Subtasks: []SubTask{{ID: "a"}, {ID: "b"}}}
	if i := task.FindSubtask("b"); i != 1 {
		t.Errorf("expected index 1, got %d", i)
	}
	if i := task.FindSubtask("z"); i != -1 {
		t.Errorf("expected -1 for missing subtask, got %d", i)
	}
}

func TestValidateStruct(t *testing.T) {
	valid := NewTask(uuid.NewString(), "ok")
	if err := ValidateStruct(valid); err != nil {
		t.Errorf("expected valid task to pass validation: %v", err)
	}

	missingTitle := NewTask(uuid.NewString(), "")
	if err := ValidateStruct(missingTitle); err == nil {
		t.Error("expected validation error for empty title")
	}

	badPriority := NewTask(uuid.NewString(), "ok")
	badPriority.Priority = "asap"
	if err := ValidateStruct(badPriority); err == nil {
		t.Error("expected validation error for unknown priority")
	}
}
