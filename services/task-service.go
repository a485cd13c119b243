package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aayush9266/gtd-app/logging"
	"github.com/Aayush9266/gtd-app/models"
	"github.com/Aayush9266/gtd-app/storage"
)

const tasksBlobKey = "gtd_tasks"

// DefaultReviewWindowDays is the recency window for the weekly review list.
const DefaultReviewWindowDays = 7

// TaskService owns the task collection. Every operation re-reads the full
// collection from the blob store, so each call is self-consistent with the
// latest persisted state; there is no in-memory cache and no locking across
// the read-modify-write cycle (last writer wins on overlapping calls).
type TaskService struct {
	blobs storage.BlobStore
}

func NewTaskService(blobs storage.BlobStore) *TaskService {
	return &TaskService{blobs: blobs}
}

// CreateTaskInput carries caller-settable fields for a new task. ID and
// CreatedAt are always assigned by the service.
type CreateTaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Context     models.TaskContext  `json:"context"`
	Status      models.TaskStatus   `json:"status"`
	DueDate     string              `json:"dueDate"`
	Tags        []string            `json:"tags"`
	ProjectID   string              `json:"projectId"`
	Reminder    string              `json:"reminder"`
}

// TaskUpdate is a partial update; nil fields are left unchanged, non-nil
// fields overwrite the stored value (tags are replaced wholesale, not
// merged). CreatedAt is immutable and has no field here.
type TaskUpdate struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	Context     *models.TaskContext  `json:"context,omitempty"`
	Status      *models.TaskStatus   `json:"status,omitempty"`
	DueDate     *string              `json:"dueDate,omitempty"`
	CompletedAt *string              `json:"completedAt,omitempty"`
	Tags        *[]string            `json:"tags,omitempty"`
	ProjectID   *string              `json:"projectId,omitempty"`
	Reminder    *string              `json:"reminder,omitempty"`
}

// loadTasks reads the persisted collection. A corrupt blob is treated as an
// absent collection rather than an error (tolerant-read policy: the data is
// unrecoverable either way, and read paths must keep working).
func (s *TaskService) loadTasks(ctx context.Context) ([]models.Task, error) {
	text, ok, err := s.blobs.ReadBlob(ctx, tasksBlobKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Task{}, nil
	}
	tasks, err := decodeTasks(text)
	if err != nil {
		logging.Logger.Warnf("Event ID: TASKS_DECODE_FAILED, Description: Treating task collection as empty: %v", err)
		return []models.Task{}, nil
	}
	return tasks, nil
}

func (s *TaskService) saveTasks(ctx context.Context, tasks []models.Task) error {
	text, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	return s.blobs.WriteBlob(ctx, tasksBlobKey, text)
}

// GetAllTasks returns every task in stored order.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	return s.loadTasks(ctx)
}

func (s *TaskService) GetTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Task{}
	for _, task := range tasks {
		if task.Status == status {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func (s *TaskService) GetTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Task{}
	for _, task := range tasks {
		if task.ProjectID == projectID {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func (s *TaskService) GetTasksByContext(ctx context.Context, taskContext models.TaskContext) ([]models.Task, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Task{}
	for _, task := range tasks {
		if task.Context == taskContext {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func (s *TaskService) GetCompletedTasks(ctx context.Context) ([]models.Task, error) {
	return s.GetTasksByStatus(ctx, models.StatusCompleted)
}

func (s *TaskService) GetArchivedTasks(ctx context.Context) ([]models.Task, error) {
	return s.GetTasksByStatus(ctx, models.StatusArchived)
}

// SearchTasks matches query case-insensitively against title, description
// and every tag.
func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	filtered := []models.Task{}
	for _, task := range tasks {
		if taskMatches(task, needle) {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func taskMatches(task models.Task, needle string) bool {
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), needle) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// GetRecentlyCreated returns tasks created within the last windowDays days,
// for the weekly review. Tasks whose createdAt does not parse are skipped.
func (s *TaskService) GetRecentlyCreated(ctx context.Context, windowDays int) ([]models.Task, error) {
	if windowDays <= 0 {
		windowDays = DefaultReviewWindowDays
	}
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	filtered := []models.Task{}
	for _, task := range tasks {
		createdAt, err := time.Parse(time.RFC3339, task.CreatedAt)
		if err != nil {
			continue
		}
		if !createdAt.Before(cutoff) {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

// CreateTask validates the input, assigns a fresh id and creation timestamp,
// appends the task and persists the whole collection.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	status := input.Status
	if status == "" {
		status = models.StatusInbox
	}
	if !models.ValidStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", priority)}
	}
	taskContext := input.Context
	if taskContext == "" {
		taskContext = models.ContextPersonal
	}
	if !models.ValidContext(taskContext) {
		return nil, &ValidationError{Field: "context", Reason: fmt.Sprintf("unknown context %q", taskContext)}
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	if dup := duplicateTag(tags); dup != "" {
		return nil, &ValidationError{Field: "tags", Reason: fmt.Sprintf("duplicate tag %q", dup)}
	}

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taken[t.ID] = true
	}

	task := models.Task{
		ID:          newRecordID(taken),
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		Context:     taskContext,
		Status:      status,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Tags:        tags,
		ProjectID:   input.ProjectID,
		Reminder:    input.Reminder,
	}

	tasks = append(tasks, task)
	if err := s.saveTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to persist new task: %w", err)
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Created task %s with status %s", task.ID, task.Status)
	return &task, nil
}

// UpdateTask merges the non-nil fields of updates into the task with the
// given id and persists the collection.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, updates TaskUpdate) (*models.Task, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	index := findTask(tasks, taskID)
	if index == -1 {
		return nil, ErrTaskNotFound
	}

	task := tasks[index]
	if updates.Title != nil {
		title := strings.TrimSpace(*updates.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		task.Title = title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Priority != nil {
		if !models.ValidPriority(*updates.Priority) {
			return nil, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", *updates.Priority)}
		}
		task.Priority = *updates.Priority
	}
	if updates.Context != nil {
		if !models.ValidContext(*updates.Context) {
			return nil, &ValidationError{Field: "context", Reason: fmt.Sprintf("unknown context %q", *updates.Context)}
		}
		task.Context = *updates.Context
	}
	if updates.Status != nil {
		if !models.ValidStatus(*updates.Status) {
			return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *updates.Status)}
		}
		task.Status = *updates.Status
	}
	if updates.DueDate != nil {
		task.DueDate = *updates.DueDate
	}
	if updates.CompletedAt != nil {
		task.CompletedAt = *updates.CompletedAt
	}
	if updates.Tags != nil {
		tags := *updates.Tags
		if tags == nil {
			tags = []string{}
		}
		if dup := duplicateTag(tags); dup != "" {
			return nil, &ValidationError{Field: "tags", Reason: fmt.Sprintf("duplicate tag %q", dup)}
		}
		task.Tags = tags
	}
	if updates.ProjectID != nil {
		task.ProjectID = *updates.ProjectID
	}
	if updates.Reminder != nil {
		task.Reminder = *updates.Reminder
	}

	tasks[index] = task
	if err := s.saveTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to persist task update: %w", err)
	}

	return &task, nil
}

// DeleteTask removes the task from the collection. Archiving is a status
// value, not a deletion; this is the only way a task leaves the collection.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}

	index := findTask(tasks, taskID)
	if index == -1 {
		return ErrTaskNotFound
	}

	tasks = append(tasks[:index], tasks[index+1:]...)
	if err := s.saveTasks(ctx, tasks); err != nil {
		return fmt.Errorf("failed to persist task deletion: %w", err)
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Deleted task %s", taskID)
	return nil
}

// MoveTask sets the task's status bucket. Moving into completed stamps
// completedAt; moving out again does not clear it. Transitions are
// deliberately unrestricted: any bucket is reachable from any other.
func (s *TaskService) MoveTask(ctx context.Context, taskID string, newStatus models.TaskStatus) (*models.Task, error) {
	if !models.ValidStatus(newStatus) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", newStatus)}
	}
	updates := TaskUpdate{Status: &newStatus}
	if newStatus == models.StatusCompleted {
		completedAt := time.Now().UTC().Format(time.RFC3339)
		updates.CompletedAt = &completedAt
	}
	return s.UpdateTask(ctx, taskID, updates)
}

// CompleteTask moves the task to completed.
func (s *TaskService) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	return s.MoveTask(ctx, taskID, models.StatusCompleted)
}

// ArchiveTask moves the task to archived. The service permits archiving
// from any status; keeping archive-after-complete is the caller's policy.
func (s *TaskService) ArchiveTask(ctx context.Context, taskID string) (*models.Task, error) {
	return s.MoveTask(ctx, taskID, models.StatusArchived)
}

// AssignTaskToProject sets the task's project reference, or clears it when
// projectID is empty. The reference is not validated against the project
// collection; a dangling id is tolerated until the project store clears it
// on project deletion.
func (s *TaskService) AssignTaskToProject(ctx context.Context, taskID, projectID string) (*models.Task, error) {
	return s.UpdateTask(ctx, taskID, TaskUpdate{ProjectID: &projectID})
}

func findTask(tasks []models.Task, taskID string) int {
	for i, task := range tasks {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}

func duplicateTag(tags []string) string {
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			return tag
		}
		seen[tag] = true
	}
	return ""
}
