package domain

import (
	"sort"
	"time"
)

// Priority represents how soon a task needs attention.
type Priority string

// Valid task priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status represents a task's position in its lifecycle.
type Status string

// Valid task statuses.
const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task represents a single tracked task owned by a user.
//
// OwnerID, ID and CreatedAt are immutable after creation. Tags carry set
// semantics (duplicates collapsed, order not significant); Attachments is
// an append-only list of opaque filenames owned by an external blob store.
// Summary is derived from Description by the triage engine.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	Attachments []string   `json:"attachments"`
	Summary     string     `json:"summary,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task owned by ownerID. Priority defaults to medium
// and status to todo when not supplied; both timestamps are set to the
// current instant. Returns an error if validation fails.
func NewTask(ownerID, title, description string, priority Priority, dueDate *time.Time, tags []string) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          NewID(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      StatusTodo,
		DueDate:     dueDate,
		Tags:        NormalizeTags(tags),
		Attachments: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.OwnerID == "" {
		return ErrEmptyUserID
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}

	if !t.Status.Valid() {
		return ErrInvalidStatus
	}

	return nil
}

// Clone returns a deep copy of the task. Stores hand out clones so callers
// never hold references into the stored representation.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	c.Tags = append([]string(nil), t.Tags...)
	c.Attachments = append([]string(nil), t.Attachments...)
	return &c
}

// Touch refreshes the task's UpdatedAt timestamp.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// NormalizeTags collapses duplicate tags and returns them in sorted order.
// Tag order is not significant, but a deterministic order keeps the stored
// representation and API responses stable.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
