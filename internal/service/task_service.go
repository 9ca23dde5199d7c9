package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mstern/tasktriage/internal/domain"
	"github.com/mstern/tasktriage/internal/query"
	"github.com/mstern/tasktriage/internal/store"
	"github.com/mstern/tasktriage/internal/triage"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Priority defaults to medium and status is always todo on creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
	Tags        []string
}

// TaskPatch describes a partial update with merge semantics: nil fields
// are left unchanged. Owner, ID and creation time are not patchable.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Status      *domain.Status
	DueDate     *time.Time
	Tags        []string
}

// TaskService orchestrates the task store, the query engine and the triage
// engine. Every operation is scoped to the calling owner: acting on a task
// owned by someone else behaves exactly like the task not existing, so
// existence is never leaked across owners.
type TaskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
// If logger is nil, the default logger is used.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask validates the input, assigns a fresh ID and timestamps, and
// persists the new task for ownerID.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, in CreateTaskInput) (*domain.Task, error) {
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, domain.ErrInvalidPriority)
	}

	task, err := domain.NewTask(ownerID, in.Title, in.Description, in.Priority, in.DueDate, in.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, &TaskServiceError{Operation: "create", Message: "storing task", Err: err}
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("owner_id", ownerID))
	return task, nil
}

// GetTask retrieves a task by ID, scoped to ownerID.
// Returns store.ErrTaskNotFound when the task is absent or owned by
// another caller.
func (s *TaskService) GetTask(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListTasks returns the owner's tasks narrowed by the filter, newest
// first. Delegates filtering and ordering to the query engine.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string, f query.Filter) ([]domain.Task, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(all, ownerID, f), nil
}

// UpdateTask applies a partial update to the owner's task. Unspecified
// fields are unchanged; owner, ID and creation time are immutable.
// Returns store.ErrTaskNotFound when absent or not owned by ownerID.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, id string, patch TaskPatch) (*domain.Task, error) {
	return s.mutate(ctx, ownerID, id, func(task *domain.Task) error {
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.DueDate != nil {
			due := *patch.DueDate
			task.DueDate = &due
		}
		if patch.Tags != nil {
			task.Tags = domain.NormalizeTags(patch.Tags)
		}
		if err := task.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return nil
	})
}

// DeleteTask permanently removes the owner's task.
// Returns store.ErrTaskNotFound when absent or not owned by ownerID.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	// Ownership is immutable, so the scoped lookup cannot go stale between
	// the check and the removal.
	if _, err := s.GetTask(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted",
		slog.String("task_id", id),
		slog.String("owner_id", ownerID))
	return nil
}

// AddAttachment appends an opaque filename to the owner's task. The file
// contents live in an external blob store; only the name is recorded here.
func (s *TaskService) AddAttachment(ctx context.Context, ownerID, id, filename string) (*domain.Task, error) {
	return s.mutate(ctx, ownerID, id, func(task *domain.Task) error {
		task.Attachments = append(task.Attachments, filename)
		return nil
	})
}

// Summarize derives a summary from the task's description, persists it and
// returns it with the updated task.
func (s *TaskService) Summarize(ctx context.Context, ownerID, id string) (string, *domain.Task, error) {
	task, err := s.mutate(ctx, ownerID, id, func(task *domain.Task) error {
		task.Summary = triage.Summarize(task)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return task.Summary, task, nil
}

// SuggestPriority derives a priority from the task's description, persists
// it and returns it with the updated task.
func (s *TaskService) SuggestPriority(ctx context.Context, ownerID, id string) (domain.Priority, *domain.Task, error) {
	task, err := s.mutate(ctx, ownerID, id, func(task *domain.Task) error {
		task.Priority = triage.SuggestPriority(task)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return task.Priority, task, nil
}

// AutoTag derives tags from the task's title and description, unions them
// with the existing tags, persists the result and returns it with the
// updated task.
func (s *TaskService) AutoTag(ctx context.Context, ownerID, id string) ([]string, *domain.Task, error) {
	task, err := s.mutate(ctx, ownerID, id, func(task *domain.Task) error {
		task.Tags = triage.AutoTag(task)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return task.Tags, task, nil
}

// mutate runs fn against the owner's task inside the store's critical
// section and refreshes UpdatedAt. The ownership check happens inside the
// same load-modify-save cycle as the mutation itself.
func (s *TaskService) mutate(ctx context.Context, ownerID, id string, fn func(*domain.Task) error) (*domain.Task, error) {
	return s.tasks.Update(ctx, id, func(task *domain.Task) error {
		if task.OwnerID != ownerID {
			return store.ErrTaskNotFound
		}
		if err := fn(task); err != nil {
			return err
		}
		task.Touch()
		return nil
	})
}
