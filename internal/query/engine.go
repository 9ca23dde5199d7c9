// Package query implements filtering and ordering of task collections.
package query

import (
	"sort"
	"strings"

	"github.com/mstern/tasktriage/internal/domain"
)

// FilterAll is the sentinel filter value that matches every status or
// priority, equivalent to leaving the filter unset.
const FilterAll = "all"

// Filter narrows a task listing. Zero values (and the "all" sentinel)
// leave the corresponding dimension unfiltered.
type Filter struct {
	// Status keeps only tasks with a matching status.
	Status string

	// Priority keeps only tasks with a matching priority.
	Priority string

	// Search keeps only tasks whose title, description or any tag contains
	// the term, case-insensitively.
	Search string
}

// Apply evaluates the filter chain over tasks for the given owner and
// returns the matches ordered by creation time, newest first. Each step
// narrows the previous result; the owner scope is applied first and cannot
// be bypassed by filter input. The input slice is never mutated.
func Apply(tasks []domain.Task, ownerID string, f Filter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && f.Priority != FilterAll && string(t.Priority) != f.Priority {
			continue
		}
		if f.Search != "" && !matchesSearch(&t, f.Search) {
			continue
		}
		out = append(out, t)
	}

	// Stable sort so tasks created in the same instant keep insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// matchesSearch reports whether the lower-cased term is a substring of the
// task's lower-cased title, description, or any of its tags.
func matchesSearch(t *domain.Task, term string) bool {
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	if t.Description != "" && strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
