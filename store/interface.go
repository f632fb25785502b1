package store

import (
	"time"

	"github.com/tasktamer/tasktamer/models"
)

// TaskUpdate is a partial field set applied by UpdateTask. Nil pointer
// fields are left untouched. The task's ID and CreatedAt can never be
// changed through an update.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Priority      *models.Priority
	Label         *models.Label
	DueDate       *time.Time
	ClearDueDate  bool
	AssignedTo    *string
	Notes         *string
	EstimatedTime *int
}

// SubtaskUpdate is a partial field set applied by UpdateSubtask.
type SubtaskUpdate struct {
	Title       *string
	Description *string
}

// TaskStore defines the contract for task persistence: the single
// authoritative collection of task records for the application session.
//
// Failure semantics: mutations that reference a missing task or subtask
// leave the store untouched. Deletions are idempotent and return nil for
// missing IDs; operations that return a record report ErrTaskNotFound or
// ErrSubtaskNotFound instead. No operation ever corrupts unrelated records.
type TaskStore interface {
	// Initialize configures the store (data file path, format) and loads
	// existing state. It must be called before any other operation.
	Initialize(config map[string]string) error

	// AddTask creates a task with a generated ID, status todo, completed
	// false and no subtasks, and returns the created record.
	AddTask(title, description string, priority models.Priority, dueDate *time.Time) (models.Task, error)

	// GetTask retrieves a task by ID.
	GetTask(id string) (models.Task, error)

	// UpdateTask merges the given partial field set into an existing task.
	UpdateTask(id string, updates TaskUpdate) (models.Task, error)

	// DeleteTask removes a task and all of its subtasks. Idempotent.
	DeleteTask(id string) error

	// CompleteTask toggles the task's completed flag, sets status to done
	// or back to todo accordingly, and cascades the completed flag to every
	// subtask in the same atomic write.
	CompleteTask(id string) (models.Task, error)

	// ChangeTaskStatus sets the task's status and keeps the completed flag
	// consistent (completed == (status == done)). Does not touch subtasks.
	ChangeTaskStatus(id string, status models.Status) (models.Task, error)

	// ChangeTaskLabel sets the task's label.
	ChangeTaskLabel(id string, label models.Label) (models.Task, error)

	// AssignTask sets the task's assignee name.
	AssignTask(id string, assignee string) (models.Task, error)

	// AddTaskNote sets the task's notes field.
	AddTaskNote(id string, note string) (models.Task, error)

	// SetEstimatedTime sets the task's estimated time in minutes.
	SetEstimatedTime(id string, minutes int) (models.Task, error)

	// AddTaskTag appends a tag unless the task already carries it
	// (case-sensitive exact match); a duplicate add is a no-op.
	AddTaskTag(id string, tag string) (models.Task, error)

	// RemoveTaskTag removes a tag. Idempotent on missing tag or task.
	RemoveTaskTag(id string, tag string) error

	// AddSubtask appends a new subtask to the task's subtask list and
	// returns the created record.
	AddSubtask(taskID, title, description string) (models.SubTask, error)

	// UpdateSubtask merges fields into the matching subtask.
	UpdateSubtask(taskID, subtaskID string, updates SubtaskUpdate) (models.SubTask, error)

	// DeleteSubtask removes a subtask from its parent's list. Idempotent.
	DeleteSubtask(taskID, subtaskID string) error

	// CompleteSubtask toggles the subtask's completed flag. The parent
	// task's own completed flag and status are not affected.
	CompleteSubtask(taskID, subtaskID string) (models.SubTask, error)

	// ListTasks retrieves tasks, optionally filtered and sorted. A nil
	// filterFn returns all tasks; a nil sortFn keeps persisted order.
	ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task)) ([]models.Task, error)

	// DeleteAllTasks removes every task. Destructive; the command layer is
	// responsible for confirming with the user first.
	DeleteAllTasks() error

	// ExportJSON returns the full task collection serialized to the
	// persisted JSON form, regardless of the store's configured format.
	ExportJSON() ([]byte, error)

	// Backup copies the current data file to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current data with the contents of sourcePath.
	Restore(sourcePath string) error

	// Close releases resources held by the store, such as file locks.
	Close() error
}
