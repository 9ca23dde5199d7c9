package store

import (
	"context"

	"github.com/mstern/tasktriage/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, regardless of owner.
	// Ownership scoping is the service layer's responsibility.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// List returns every stored task. The query engine narrows the result;
	// the store itself applies no filtering.
	List(ctx context.Context) ([]domain.Task, error)

	// Update replaces an existing task by applying mutate to the stored
	// copy inside the store's critical section and persisting the result.
	// The mutated task is returned.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, mutate func(*domain.Task) error) (*domain.Task, error)

	// Delete removes a task from the store by its ID. The removal is
	// permanent; there are no tombstones.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error
}
