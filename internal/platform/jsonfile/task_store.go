package jsonfile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mstern/tasktriage/internal/domain"
	"github.com/mstern/tasktriage/internal/store"
)

// TaskStore implements the store.TaskStore interface using a flat JSON
// document file as the storage backend.
type TaskStore struct {
	col    *collection[domain.Task]
	logger *slog.Logger
}

// NewTaskStore creates a JSON-file implementation of store.TaskStore
// backed by the file at path. If logger is nil, the default logger is used.
func NewTaskStore(path string, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		col:    newCollection[domain.Task](path),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		s.logger.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := s.col.update(func(records []domain.Task) ([]domain.Task, error) {
		return append(records, *task.Clone()), nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task created",
		slog.String("task_id", task.ID),
		slog.String("owner_id", task.OwnerID))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	records, err := s.col.loadAll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return records[i].Clone(), nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// List implements store.TaskStore.List. The returned slice is an
// independent copy of the stored collection.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	records, err := s.col.loadAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(records))
	for i := range records {
		out = append(out, *records[i].Clone())
	}
	return out, nil
}

// Update implements store.TaskStore.Update. The mutate callback runs on a
// copy of the stored task inside the collection's critical section; the
// stored copy is replaced only if both the callback and the save succeed.
func (s *TaskStore) Update(ctx context.Context, id string, mutate func(*domain.Task) error) (*domain.Task, error) {
	var updated *domain.Task

	err := s.col.update(func(records []domain.Task) ([]domain.Task, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			task := records[i].Clone()
			if err := mutate(task); err != nil {
				return nil, err
			}
			records[i] = *task
			updated = task.Clone()
			return records, nil
		}
		return nil, store.ErrTaskNotFound
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task updated", slog.String("task_id", id))
	return updated, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	err := s.col.update(func(records []domain.Task) ([]domain.Task, error) {
		for i := range records {
			if records[i].ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, store.ErrTaskNotFound
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task deleted", slog.String("task_id", id))
	return nil
}
