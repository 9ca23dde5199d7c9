// Package triage derives summaries, priorities and tags from task text
// using deterministic keyword rules. Every operation is a pure function of
// the task's current text fields and is idempotent; persisting the derived
// values is the service layer's job.
package triage

import (
	"strings"

	"github.com/mstern/tasktriage/internal/domain"
)

// summaryLimit is the maximum number of characters carried over from the
// description into the summary.
const summaryLimit = 140

// highPriorityKeywords escalate a task to high priority. They are checked
// before lowPriorityKeywords, so a description matching both yields high.
var highPriorityKeywords = []string{"urgent", "asap", "critical"}

// lowPriorityKeywords demote a task to low priority.
var lowPriorityKeywords = []string{"later", "someday", "nice to have"}

// tagRule pairs a suggested tag with the keywords that trigger it.
type tagRule struct {
	tag      string
	keywords []string
}

// tagRules is the fixed tag suggestion table, applied in order against the
// lower-cased concatenation of title and description.
var tagRules = []tagRule{
	{"work", []string{"work", "office", "meeting", "project", "deadline"}},
	{"personal", []string{"personal", "home", "family", "self"}},
	{"urgent", []string{"urgent", "asap", "critical", "important"}},
	{"development", []string{"code", "programming", "development", "bug", "feature"}},
	{"design", []string{"design", "ui", "ux", "mockup", "wireframe"}},
	{"research", []string{"research", "study", "analyze", "investigate"}},
}

// Summarize returns the first 140 characters of the task's description,
// with an ellipsis marker appended when the description is longer. An
// empty description yields an empty summary. The summary is always derived
// from the description, never from a previous summary, so re-running on an
// unchanged task returns the same value.
func Summarize(t *domain.Task) string {
	desc := []rune(t.Description)
	if len(desc) <= summaryLimit {
		return t.Description
	}
	return string(desc[:summaryLimit]) + "..."
}

// SuggestPriority derives a priority from the task's description: high
// when any escalating keyword is present, otherwise low when any demoting
// keyword is present, otherwise medium.
func SuggestPriority(t *domain.Task) domain.Priority {
	desc := strings.ToLower(t.Description)

	for _, kw := range highPriorityKeywords {
		if strings.Contains(desc, kw) {
			return domain.PriorityHigh
		}
	}
	for _, kw := range lowPriorityKeywords {
		if strings.Contains(desc, kw) {
			return domain.PriorityLow
		}
	}
	return domain.PriorityMedium
}

// AutoTag suggests tags for the task by matching the tag rule table
// against the lower-cased concatenation of title and description, and
// returns the union of the suggestions with the task's existing tags,
// duplicates collapsed.
func AutoTag(t *domain.Task) []string {
	text := strings.ToLower(t.Title + " " + t.Description)

	tags := append([]string(nil), t.Tags...)
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return domain.NormalizeTags(tags)
}
