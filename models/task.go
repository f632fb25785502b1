package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status represents the workflow stage of a task. It is kept consistent
// with the boolean Completed flag by the store's transition operations.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// AllStatuses lists the statuses in board-column order.
var AllStatuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Priority represents the urgency ranking of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the sort rank of a priority: urgent sorts before high,
// high before medium, medium before low. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Label is a coarse category for a task.
type Label string

const (
	LabelWork      Label = "work"
	LabelPersonal  Label = "personal"
	LabelEducation Label = "education"
	LabelHealth    Label = "health"
	LabelFinance   Label = "finance"
	LabelOther     Label = "other"
)

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	switch l {
	case LabelWork, LabelPersonal, LabelEducation, LabelHealth, LabelFinance, LabelOther:
		return true
	}
	return false
}

// SubTask is a smaller unit of work belonging to exactly one Task. It is
// created, read, updated, and deleted only through operations scoped by
// its parent task's ID.
type SubTask struct {
	ID          string    `json:"id" yaml:"id" validate:"required,uuid4"`
	Title       string    `json:"title" yaml:"title" validate:"required,min=1"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" validate:"required"`
}

// Task is the top-level unit of work.
type Task struct {
	ID            string     `json:"id" yaml:"id" validate:"required,uuid4"`
	Title         string     `json:"title" yaml:"title" validate:"required,min=1"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Completed     bool       `json:"completed" yaml:"completed"`
	Priority      Priority   `json:"priority" yaml:"priority" validate:"required,oneof=low medium high urgent"`
	Status        Status     `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=todo in_progress review done"`
	Label         Label      `json:"label,omitempty" yaml:"label,omitempty" validate:"omitempty,oneof=work personal education health finance other"`
	DueDate       *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	AssignedTo    string     `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty"`
	Tags          []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Notes         string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	EstimatedTime int        `json:"estimatedTime,omitempty" yaml:"estimatedTime,omitempty" validate:"omitempty,min=0"`
	Subtasks      []SubTask  `json:"subtasks" yaml:"subtasks"`
	CreatedAt     time.Time  `json:"createdAt" yaml:"createdAt" validate:"required"`
}

// NewTask builds a fresh task in its initial lifecycle state: status todo,
// not completed, no subtasks.
func NewTask(id, title string) Task {
	return Task{
		ID:        id,
		Title:     title,
		Completed: false,
		Priority:  PriorityMedium,
		Status:    StatusTodo,
		Subtasks:  []SubTask{},
		CreatedAt: time.Now().UTC(),
	}
}

// Normalize fills defaults for fields that may be absent on records written
// by older versions. Records persisted before the status field existed carry
// only the completed flag; status is derived from it. Applied once at load
// so the rest of the code never checks for unset fields.
func (t *Task) Normalize() {
	if t.Status == "" {
		if t.Completed {
			t.Status = StatusDone
		} else {
			t.Status = StatusTodo
		}
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Subtasks == nil {
		t.Subtasks = []SubTask{}
	}
}

// HasTag reports whether the task carries the given tag (case-sensitive
// exact match).
func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// FindSubtask returns the index of the subtask with the given ID, or -1.
func (t *Task) FindSubtask(subtaskID string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			return i
		}
	}
	return -1
}

// validate is a single instance; it caches struct info.
var validate = validator.New()

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}
