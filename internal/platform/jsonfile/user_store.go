package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mstern/tasktriage/internal/domain"
	"github.com/mstern/tasktriage/internal/store"
)

// userRecord is the durable representation of a user. It exists so the
// password hash can be persisted without ever appearing in the JSON
// rendering of domain.User.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.HashedPassword,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Email:          r.Email,
		Name:           r.Name,
		HashedPassword: r.PasswordHash,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// UserStore implements the store.UserStore interface using a flat JSON
// document file as the storage backend.
type UserStore struct {
	col    *collection[userRecord]
	logger *slog.Logger
}

// NewUserStore creates a JSON-file implementation of store.UserStore
// backed by the file at path. If logger is nil, the default logger is used.
func NewUserStore(path string, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		col:    newCollection[userRecord](path),
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists when the email uniqueness invariant would
// be violated.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		s.logger.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: user has no password hash", store.ErrInvalidEntity)
	}

	err := s.col.update(func(records []userRecord) ([]userRecord, error) {
		for _, r := range records {
			if r.Email == user.Email {
				return nil, store.ErrEmailExists
			}
		}
		return append(records, toUserRecord(user)), nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	records, err := s.col.loadAll()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r.toDomain(), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	records, err := s.col.loadAll()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Email == email {
			return r.toDomain(), nil
		}
	}
	return nil, store.ErrUserNotFound
}
