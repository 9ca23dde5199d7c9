package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstern/tasktriage/internal/domain"
	"github.com/mstern/tasktriage/internal/platform/jsonfile"
	"github.com/mstern/tasktriage/internal/query"
	"github.com/mstern/tasktriage/internal/service"
	"github.com/mstern/tasktriage/internal/store"
)

func newTestService(t *testing.T) *service.TaskService {
	t.Helper()
	taskStore := jsonfile.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"), nil)
	return service.NewTaskService(taskStore, nil)
}

func TestCreateTask_Defaults(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	task, err := svc.CreateTask(context.Background(), "alice", service.CreateTaskInput{
		Title: "new task",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "alice", task.OwnerID)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.NotNil(t, task.Tags)
	assert.NotNil(t, task.Attachments)
}

func TestCreateTask_RejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.CreateTask(context.Background(), "alice", service.CreateTaskInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTask_RejectsUnknownPriority(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.CreateTask(context.Background(), "alice", service.CreateTaskInput{
		Title:    "bad priority",
		Priority: domain.Priority("sky-high"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTask_IDsAreUnique(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		task, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "task"})
		require.NoError(t, err)
		_, dup := seen[task.ID]
		require.False(t, dup, "duplicate ID %s", task.ID)
		seen[task.ID] = struct{}{}
	}
}

func TestCreateTask_CollapsesDuplicateTags(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	task, err := svc.CreateTask(context.Background(), "alice", service.CreateTaskInput{
		Title: "tagged",
		Tags:  []string{"work", "work", "home"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "home"}, task.Tags)
}

func TestUpdateTask_MergeSemantics(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{
		Title:       "original title",
		Description: "original description",
	})
	require.NoError(t, err)

	status := domain.StatusDoing
	updated, err := svc.UpdateTask(ctx, "alice", created.ID, service.TaskPatch{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDoing, updated.Status)
	assert.Equal(t, "original title", updated.Title)
	assert.Equal(t, "original description", updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateTask_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "alice's task"})
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.UpdateTask(ctx, "bob", created.ID, service.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// Same signal as a task that does not exist at all.
	_, err = svc.UpdateTask(ctx, "bob", "no-such-task", service.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestGetTask_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "private"})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "doomed"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteTask(ctx, "bob", created.ID), store.ErrTaskNotFound)
	require.NoError(t, svc.DeleteTask(ctx, "alice", created.ID))
	assert.ErrorIs(t, svc.DeleteTask(ctx, "alice", created.ID), store.ErrTaskNotFound)
}

func TestListTasks_ScopedAndFiltered(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "Fix Login Bug", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "Plan offsite"})
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, "bob", service.CreateTaskInput{Title: "Fix login copy"})
	require.NoError(t, err)

	all, err := svc.ListTasks(ctx, "alice", query.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.ListTasks(ctx, "alice", query.Filter{Search: "LOGIN"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Fix Login Bug", found[0].Title)

	empty, err := svc.ListTasks(ctx, "carol", query.Filter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSummarize_PersistsDerivedSummary(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{
		Title:       "summarize me",
		Description: "short description",
	})
	require.NoError(t, err)

	summary, task, err := svc.Summarize(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "short description", summary)
	assert.Equal(t, summary, task.Summary)

	// Idempotent: a second run yields the same summary.
	again, _, err := svc.Summarize(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, again)

	stored, err := svc.GetTask(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, stored.Summary)
}

func TestSuggestPriority_PersistsAndRefreshesUpdatedAt(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{
		Title:       "triage me",
		Description: "this is urgent but also someday",
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	priority, task, err := svc.SuggestPriority(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, priority)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.True(t, task.UpdatedAt.After(created.UpdatedAt))
}

func TestAutoTag_UnionsWithExistingTags(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{
		Title:       "task",
		Description: "need to fix a bug in the code",
		Tags:        []string{"misc"},
	})
	require.NoError(t, err)

	tags, _, err := svc.AutoTag(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"misc", "development"}, tags)
}

func TestTriage_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{
		Title:       "private",
		Description: "urgent",
	})
	require.NoError(t, err)

	_, _, err = svc.Summarize(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, _, err = svc.SuggestPriority(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, _, err = svc.AutoTag(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestAddAttachment_AppendsFilename(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", service.CreateTaskInput{Title: "with files"})
	require.NoError(t, err)

	task, err := svc.AddAttachment(ctx, "alice", created.ID, "123-report.pdf")
	require.NoError(t, err)
	task, err = svc.AddAttachment(ctx, "alice", created.ID, "456-notes.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"123-report.pdf", "456-notes.txt"}, task.Attachments)
}
