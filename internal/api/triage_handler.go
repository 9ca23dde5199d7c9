package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mstern/tasktriage/internal/api/middleware"
	"github.com/mstern/tasktriage/internal/api/shared"
	"github.com/mstern/tasktriage/internal/service"
)

// TriageHandler exposes the deterministic triage operations: summarize,
// suggest-priority and auto-tag. Each one runs its rule over the caller's
// task, persists the derived value and returns it with the updated task.
type TriageHandler struct {
	taskService *service.TaskService
	validator   *validator.Validate
}

// NewTriageHandler creates a new TriageHandler with the given dependencies.
func NewTriageHandler(taskService *service.TaskService) *TriageHandler {
	return &TriageHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// decodeTriageRequest parses and validates the common triage payload,
// returning the caller and task IDs. A false return means a response has
// already been written.
func (h *TriageHandler) decodeTriageRequest(w http.ResponseWriter, r *http.Request) (ownerID, taskID string, ok bool) {
	ownerID, authed := middleware.GetUserID(r)
	if !authed {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", "", false
	}

	var req TriageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return "", "", false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return "", "", false
	}

	return ownerID, req.TaskID, true
}

// Summarize handles POST /api/ai/summarize.
func (h *TriageHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := h.decodeTriageRequest(w, r)
	if !ok {
		return
	}

	summary, task, err := h.taskService.Summarize(r.Context(), ownerID, taskID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummarizeResponse{Summary: summary, Task: task})
}

// SuggestPriority handles POST /api/ai/suggest-priority.
func (h *TriageHandler) SuggestPriority(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := h.decodeTriageRequest(w, r)
	if !ok {
		return
	}

	priority, task, err := h.taskService.SuggestPriority(r.Context(), ownerID, taskID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuggestPriorityResponse{Priority: priority, Task: task})
}

// AutoTag handles POST /api/ai/auto-tag.
func (h *TriageHandler) AutoTag(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := h.decodeTriageRequest(w, r)
	if !ok {
		return
	}

	tags, task, err := h.taskService.AutoTag(r.Context(), ownerID, taskID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AutoTagResponse{Tags: tags, Task: task})
}
