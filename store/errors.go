package store

import "errors"

var (
	// ErrTaskNotFound is returned by operations that reference a task ID
	// not present in the store. The store state is never mutated when it
	// is returned.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSubtaskNotFound is returned by subtask operations when the parent
	// task exists but the subtask ID does not resolve within it.
	ErrSubtaskNotFound = errors.New("subtask not found")
)
