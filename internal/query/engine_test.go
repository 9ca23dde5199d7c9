package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstern/tasktriage/internal/domain"
	"github.com/mstern/tasktriage/internal/query"
)

func makeTask(id, owner, title string, status domain.Status, priority domain.Priority, createdAt time.Time, tags ...string) domain.Task {
	return domain.Task{
		ID:        id,
		OwnerID:   owner,
		Title:     title,
		Status:    status,
		Priority:  priority,
		Tags:      tags,
		CreatedAt: createdAt,
	}
}

func fixtureTasks() []domain.Task {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Task{
		makeTask("t1", "alice", "Fix Login Bug", domain.StatusTodo, domain.PriorityHigh, base),
		makeTask("t2", "alice", "Write docs", domain.StatusDoing, domain.PriorityLow, base.Add(time.Hour), "writing"),
		makeTask("t3", "alice", "Plan sprint", domain.StatusDone, domain.PriorityMedium, base.Add(2*time.Hour)),
		makeTask("t4", "bob", "Fix login styling", domain.StatusTodo, domain.PriorityHigh, base.Add(3*time.Hour)),
	}
}

func TestApply_OwnerScopeIsMandatory(t *testing.T) {
	t.Parallel()

	tasks := fixtureTasks()

	for _, f := range []query.Filter{
		{},
		{Status: "todo"},
		{Priority: "high"},
		{Search: "login"},
		{Status: "all", Priority: "all"},
	} {
		out := query.Apply(tasks, "alice", f)
		for _, task := range out {
			assert.Equal(t, "alice", task.OwnerID)
		}
	}
}

func TestApply_StatusAndPriorityFilters(t *testing.T) {
	t.Parallel()

	tasks := fixtureTasks()

	tests := []struct {
		name     string
		filter   query.Filter
		expected []string
	}{
		{
			name:     "no_filter_returns_all_owned",
			filter:   query.Filter{},
			expected: []string{"t3", "t2", "t1"},
		},
		{
			name:     "all_sentinel_matches_everything",
			filter:   query.Filter{Status: "all", Priority: "all"},
			expected: []string{"t3", "t2", "t1"},
		},
		{
			name:     "status_narrows",
			filter:   query.Filter{Status: "doing"},
			expected: []string{"t2"},
		},
		{
			name:     "priority_narrows",
			filter:   query.Filter{Priority: "high"},
			expected: []string{"t1"},
		},
		{
			name:     "status_and_priority_combine",
			filter:   query.Filter{Status: "todo", Priority: "low"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := query.Apply(tasks, "alice", tt.filter)
			ids := make([]string, 0, len(out))
			for _, task := range out {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestApply_FilteredResultIsSubsetOfUnfiltered(t *testing.T) {
	t.Parallel()

	tasks := fixtureTasks()
	all := query.Apply(tasks, "alice", query.Filter{})

	for _, status := range []string{"todo", "doing", "done"} {
		narrowed := query.Apply(tasks, "alice", query.Filter{Status: status})
		for _, task := range narrowed {
			assert.Contains(t, all, task, "status=%s produced a task missing from the unfiltered result", status)
		}
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	tasks := fixtureTasks()

	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{
			name:     "lowercase_term_matches_title",
			search:   "login",
			expected: []string{"t1"},
		},
		{
			name:     "uppercase_term_matches_title",
			search:   "LOGIN",
			expected: []string{"t1"},
		},
		{
			name:     "term_matches_tag",
			search:   "writ",
			expected: []string{"t2"},
		},
		{
			name:     "no_match_yields_empty",
			search:   "xyzzy",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := query.Apply(tasks, "alice", query.Filter{Search: tt.search})
			ids := make([]string, 0, len(out))
			for _, task := range out {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestApply_SearchMatchesDescription(t *testing.T) {
	t.Parallel()

	base := time.Now().UTC()
	task := makeTask("t1", "alice", "untitled", domain.StatusTodo, domain.PriorityMedium, base)
	task.Description = "Refactor the Billing module"

	out := query.Apply([]domain.Task{task}, "alice", query.Filter{Search: "billing"})
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)
}

func TestApply_SortsNewestFirst(t *testing.T) {
	t.Parallel()

	out := query.Apply(fixtureTasks(), "alice", query.Filter{})

	require.Len(t, out, 3)
	assert.Equal(t, []string{"t3", "t2", "t1"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestApply_TiesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		makeTask("first", "alice", "a", domain.StatusTodo, domain.PriorityMedium, at),
		makeTask("second", "alice", "b", domain.StatusTodo, domain.PriorityMedium, at),
		makeTask("third", "alice", "c", domain.StatusTodo, domain.PriorityMedium, at),
	}

	out := query.Apply(tasks, "alice", query.Filter{})

	require.Len(t, out, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tasks := fixtureTasks()
	ids := []string{tasks[0].ID, tasks[1].ID, tasks[2].ID, tasks[3].ID}

	_ = query.Apply(tasks, "alice", query.Filter{Search: "login"})

	assert.Equal(t, ids, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID, tasks[3].ID})
}
