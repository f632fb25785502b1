package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/tasktamer/tasktamer/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "tasks.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	checksumSuffix    = ".checksum"
)

// FileTaskStore implements the TaskStore interface using a file backend.
// The persisted form is a flat array of task records with embedded subtask
// lists (JSON by default, YAML optional). Writes are atomic (temp file +
// rename) with a SHA-256 checksum sidecar, and a file lock serializes
// concurrent CLI invocations against the same data file.
//
// Tasks are held as an ordered slice so the persisted order is stable and
// round-trips exactly.
type FileTaskStore struct {
	filePath string
	tasks    []models.Task
	flk      *flock.Flock
	format   string
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not load anything; Initialize must be called separately.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{}
}

// Initialize configures the FileTaskStore. It expects a 'dataFile' key in
// the config map; if absent it defaults to 'tasks.json' in the working
// directory. Existing tasks are loaded (and normalized for records written
// by older versions) and a file lock is established.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.tasks = nil
	return s.loadTasksFromFileInternal()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadTasksFromFileInternal reads the data file, verifies its checksum if a
// sidecar exists, unmarshals the task array and normalizes each record.
// Assumes the file lock is held.
func (s *FileTaskStore) loadTasksFromFileInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.tasks = []models.Task{}
			_ = os.Remove(checksumFilePath)
			f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644)
			if createErr != nil {
				return fmt.Errorf("failed to create data file %s: %w", s.filePath, createErr)
			}
			_ = f.Close()
			_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		actualChecksum := calculateChecksum(data)
		if actualChecksum != expectedChecksum {
			return fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", s.filePath, expectedChecksum, actualChecksum)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}
	// Data files from before checksums load fine; the next save creates one.

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
		s.tasks = []models.Task{}
		return nil
	}

	var tasks []models.Task
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &tasks); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %s: %w", s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &tasks); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %s: %w", s.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	for i := range tasks {
		tasks[i].Normalize()
	}
	s.tasks = tasks
	return nil
}

// saveTasksToFileInternal writes the task array to the data file, then its
// checksum sidecar, both via atomic renames. Assumes the lock is held.
func (s *FileTaskStore) saveTasksToFileInternal() error {
	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(s.tasks, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(s.tasks)
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(marshaledData)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated but checksum file %s was not: %w", s.filePath, checksumFilePath, err)
	}

	return nil
}

// generateID creates a new universally unique identifier string.
func generateID() string {
	return uuid.NewString()
}

// findTask returns the index of the task with the given ID, or -1.
func (s *FileTaskStore) findTask(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// withLock acquires the file lock, reloads state from disk and runs fn.
// If fn reports a mutation, the new state is saved before unlocking; on a
// save failure the in-memory state is reloaded from the unchanged file so
// callers never observe a half-applied operation.
func (s *FileTaskStore) withLock(fn func() (mutated bool, err error)) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock data file: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadTasksFromFileInternal(); err != nil {
		return fmt.Errorf("failed to reload tasks: %w", err)
	}

	mutated, err := fn()
	if err != nil {
		return err
	}
	if !mutated {
		return nil
	}

	if err := s.saveTasksToFileInternal(); err != nil {
		_ = s.loadTasksFromFileInternal()
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// AddTask creates a new task in its initial state and returns it. The
// returned ID is usable immediately by the caller.
func (s *FileTaskStore) AddTask(title, description string, priority models.Priority, dueDate *time.Time) (models.Task, error) {
	var created models.Task
	err := s.withLock(func() (bool, error) {
		created = models.NewTask(generateID(), title)
		created.Description = description
		if priority != "" {
			created.Priority = priority
		}
		created.DueDate = dueDate
		s.tasks = append(s.tasks, created)
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// GetTask retrieves a task by its unique identifier.
func (s *FileTaskStore) GetTask(id string) (models.Task, error) {
	var found models.Task
	err := s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		found = s.tasks[i]
		return false, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return found, nil
}

// UpdateTask merges the given partial field set into an existing task.
// ID and CreatedAt are never touched.
func (s *FileTaskStore) UpdateTask(id string, updates TaskUpdate) (models.Task, error) {
	var updated models.Task
	err := s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		task := &s.tasks[i]
		if updates.Title != nil {
			task.Title = *updates.Title
		}
		if updates.Description != nil {
			task.Description = *updates.Description
		}
		if updates.Priority != nil {
			task.Priority = *updates.Priority
		}
		if updates.Label != nil {
			task.Label = *updates.Label
		}
		if updates.ClearDueDate {
			task.DueDate = nil
		} else if updates.DueDate != nil {
			due := *updates.DueDate
			task.DueDate = &due
		}
		if updates.AssignedTo != nil {
			task.AssignedTo = *updates.AssignedTo
		}
		if updates.Notes != nil {
			task.Notes = *updates.Notes
		}
		if updates.EstimatedTime != nil {
			task.EstimatedTime = *updates.EstimatedTime
		}
		updated = *task
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes a task and its subtasks. Deleting an unknown ID is a
// no-op; subtasks never outlive their parent.
func (s *FileTaskStore) DeleteTask(id string) error {
	return s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, nil
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		return true, nil
	})
}

// CompleteTask toggles the task's completion. The status follows the flag
// (done when completed, todo otherwise) and every subtask's completed flag
// is forced to the parent's new value, all in a single snapshot write.
func (s *FileTaskStore) CompleteTask(id string) (models.Task, error) {
	var toggled models.Task
	err := s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		task := &s.tasks[i]
		task.Completed = !task.Completed
		if task.Completed {
			task.Status = models.StatusDone
		} else {
			task.Status = models.StatusTodo
		}
		for j := range task.Subtasks {
			task.Subtasks[j].Completed = task.Completed
		}
		toggled = *task
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return toggled, nil
}

// ChangeTaskStatus sets the task's status and keeps the completed flag
// consistent. Subtasks are not cascaded.
func (s *FileTaskStore) ChangeTaskStatus(id string, status models.Status) (models.Task, error) {
	var updated models.Task
	err := s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		task := &s.tasks[i]
		task.Status = status
		task.Completed = status == models.StatusDone
		updated = *task
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// setField is the shared shape of the single-field setters.
func (s *FileTaskStore) setField(id string, apply func(*models.Task)) (models.Task, error) {
	var updated models.Task
	err := s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		apply(&s.tasks[i])
		updated = s.tasks[i]
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// ChangeTaskLabel sets the task's label.
func (s *FileTaskStore) ChangeTaskLabel(id string, label models.Label) (models.Task, error) {
	return s.setField(id, func(t *models.Task) { t.Label = label })
}

// AssignTask sets the task's assignee name.
func (s *FileTaskStore) AssignTask(id string, assignee string) (models.Task, error) {
	return s.setField(id, func(t *models.Task) { t.AssignedTo = assignee })
}

// AddTaskNote sets the task's notes field.
func (s *FileTaskStore) AddTaskNote(id string, note string) (models.Task, error) {
	return s.setField(id, func(t *models.Task) { t.Notes = note })
}

// SetEstimatedTime sets the task's estimated time in minutes.
func (s *FileTaskStore) SetEstimatedTime(id string, minutes int) (models.Task, error) {
	return s.setField(id, func(t *models.Task) { t.EstimatedTime = minutes })
}

// AddTaskTag appends a tag to the task. Tag uniqueness is a store
// invariant: adding a tag the task already carries changes nothing.
func (s *FileTaskStore) AddTaskTag(id string, tag string) (models.Task, error) {
	var updated models.Task
	err := s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		task := &s.tasks[i]
		updated = *task
		if task.HasTag(tag) {
			return false, nil
		}
		task.Tags = append(task.Tags, tag)
		updated = *task
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// RemoveTaskTag removes a tag from the task. Idempotent on both missing
// tag and missing task.
func (s *FileTaskStore) RemoveTaskTag(id string, tag string) error {
	return s.withLock(func() (bool, error) {
		i := s.findTask(id)
		if i < 0 {
			return false, nil
		}
		task := &s.tasks[i]
		if !task.HasTag(tag) {
			return false, nil
		}
		newTags := make([]string, 0, len(task.Tags))
		for _, existing := range task.Tags {
			if existing != tag {
				newTags = append(newTags, existing)
			}
		}
		if len(newTags) == 0 {
			newTags = nil
		}
		task.Tags = newTags
		return true, nil
	})
}

// AddSubtask appends a new subtask to the parent task's subtask list and
// returns the created record. The parent must exist; no other task is
// touched either way.
func (s *FileTaskStore) AddSubtask(taskID, title, description string) (models.SubTask, error) {
	var created models.SubTask
	err := s.withLock(func() (bool, error) {
		i := s.findTask(taskID)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", taskID, ErrTaskNotFound)
		}
		created = models.SubTask{
			ID:          generateID(),
			Title:       title,
			Description: description,
			Completed:   false,
			CreatedAt:   time.Now().UTC(),
		}
		s.tasks[i].Subtasks = append(s.tasks[i].Subtasks, created)
		return true, nil
	})
	if err != nil {
		return models.SubTask{}, err
	}
	return created, nil
}

// UpdateSubtask merges fields into the matching subtask.
func (s *FileTaskStore) UpdateSubtask(taskID, subtaskID string, updates SubtaskUpdate) (models.SubTask, error) {
	var updated models.SubTask
	err := s.withLock(func() (bool, error) {
		i := s.findTask(taskID)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", taskID, ErrTaskNotFound)
		}
		j := s.tasks[i].FindSubtask(subtaskID)
		if j < 0 {
			return false, fmt.Errorf("subtask with ID %s in task %s: %w", subtaskID, taskID, ErrSubtaskNotFound)
		}
		sub := &s.tasks[i].Subtasks[j]
		if updates.Title != nil {
			sub.Title = *updates.Title
		}
		if updates.Description != nil {
			sub.Description = *updates.Description
		}
		updated = *sub
		return true, nil
	})
	if err != nil {
		return models.SubTask{}, err
	}
	return updated, nil
}

// DeleteSubtask removes a subtask from its parent's list. Idempotent on a
// missing subtask or a missing parent.
func (s *FileTaskStore) DeleteSubtask(taskID, subtaskID string) error {
	return s.withLock(func() (bool, error) {
		i := s.findTask(taskID)
		if i < 0 {
			return false, nil
		}
		j := s.tasks[i].FindSubtask(subtaskID)
		if j < 0 {
			return false, nil
		}
		subs := s.tasks[i].Subtasks
		s.tasks[i].Subtasks = append(subs[:j], subs[j+1:]...)
		return true, nil
	})
}

// CompleteSubtask toggles the subtask's completed flag. There is no upward
// cascade: the parent task's completed flag and status stay as they are.
func (s *FileTaskStore) CompleteSubtask(taskID, subtaskID string) (models.SubTask, error) {
	var toggled models.SubTask
	err := s.withLock(func() (bool, error) {
		i := s.findTask(taskID)
		if i < 0 {
			return false, fmt.Errorf("task with ID %s: %w", taskID, ErrTaskNotFound)
		}
		j := s.tasks[i].FindSubtask(subtaskID)
		if j < 0 {
			return false, fmt.Errorf("subtask with ID %s in task %s: %w", subtaskID, taskID, ErrSubtaskNotFound)
		}
		sub := &s.tasks[i].Subtasks[j]
		sub.Completed = !sub.Completed
		toggled = *sub
		return true, nil
	})
	if err != nil {
		return models.SubTask{}, err
	}
	return toggled, nil
}

// ListTasks retrieves tasks, optionally filtered and sorted. The returned
// slice is a copy; mutating it does not affect the store.
func (s *FileTaskStore) ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task)) ([]models.Task, error) {
	var result []models.Task
	err := s.withLock(func() (bool, error) {
		result = make([]models.Task, 0, len(s.tasks))
		for _, task := range s.tasks {
			if filterFn == nil || filterFn(task) {
				result = append(result, task)
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if sortFn != nil {
		sortFn(result)
	}
	return result, nil
}

// DeleteAllTasks removes all tasks from the store. The command layer is
// expected to have confirmed with the user already.
func (s *FileTaskStore) DeleteAllTasks() error {
	return s.withLock(func() (bool, error) {
		s.tasks = []models.Task{}
		return true, nil
	})
}

// ExportJSON returns the full task collection serialized to the persisted
// JSON form, regardless of the store's configured on-disk format.
func (s *FileTaskStore) ExportJSON() ([]byte, error) {
	var data []byte
	err := s.withLock(func() (bool, error) {
		var marshalErr error
		data, marshalErr = json.MarshalIndent(s.tasks, "", "  ")
		return false, marshalErr
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Backup creates a copy of the current task data at the destination path.
func (s *FileTaskStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	input, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}
	if err = os.WriteFile(destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current task data with data from the source path.
// Any existing checksum sidecar is removed; a new one is generated on the
// next save.
func (s *FileTaskStore) Restore(sourcePath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source backup file %s: %w", sourcePath, err)
	}

	tempFilePath := s.filePath + ".tmp_restore"
	defer func() { _ = os.Remove(tempFilePath) }()

	if err = os.WriteFile(tempFilePath, sourceData, 0o644); err != nil {
		return fmt.Errorf("failed to write restored data to temporary file %s: %w", tempFilePath, err)
	}
	if err = os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to atomically replace %s with restored data: %w", s.filePath, err)
	}
	_ = os.Remove(s.filePath + checksumSuffix)

	return s.loadTasksFromFileInternal()
}

// Close releases the file lock. Unlock is idempotent, so Close is safe to
// call even when the lock is not held.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
