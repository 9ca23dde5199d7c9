package api

import (
	"time"

	"github.com/mstern/tasktriage/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user. It never carries password
// material.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// User is the public view of the authenticated user
	User UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=todo doing done"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
}

// TriageRequest identifies the task a triage endpoint should operate on.
type TriageRequest struct {
	TaskID string `json:"taskId" validate:"required"`
}

// SummarizeResponse carries the derived summary and the updated task.
type SummarizeResponse struct {
	Summary string       `json:"summary"`
	Task    *domain.Task `json:"task"`
}

// SuggestPriorityResponse carries the derived priority and the updated task.
type SuggestPriorityResponse struct {
	Priority domain.Priority `json:"priority"`
	Task     *domain.Task    `json:"task"`
}

// AutoTagResponse carries the derived tag set and the updated task.
type AutoTagResponse struct {
	Tags []string     `json:"tags"`
	Task *domain.Task `json:"task"`
}

// AttachmentResponse carries the stored filename and the updated task.
type AttachmentResponse struct {
	Filename string       `json:"filename"`
	Task     *domain.Task `json:"task"`
}
