package taskstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskory/models"
)

func TestFilters(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	urgent := draft("urgent")
	urgent.Priority = models.PriorityHigh
	urgent.Tags = models.StringList{"ops"}
	urgent.Deadline = time.Now().Add(-2 * time.Hour)
	u, err := store.AddTask(ctx, urgent)
	require.NoError(t, err)

	later := draft("later")
	later.Priority = models.PriorityLow
	later.Deadline = time.Now().Add(72 * time.Hour)
	l, err := store.AddTask(ctx, later)
	require.NoError(t, err)

	done := draft("done")
	done.Deadline = time.Now().Add(-24 * time.Hour)
	dn, err := store.AddTask(ctx, done)
	require.NoError(t, err)
	require.NoError(t, store.UpdateTaskStatus(ctx, dn.ID, models.StatusCompleted))

	t.Run("by tag", func(t *testing.T) {
		got := store.TasksWithTag("ops")
		require.Len(t, got, 1)
		assert.Equal(t, u.ID, got[0].ID)
		assert.Empty(t, store.TasksWithTag("missing"))
	})

	t.Run("by status", func(t *testing.T) {
		assert.Len(t, store.TasksByStatus(models.StatusToDo), 2)
		assert.Len(t, store.TasksByStatus(models.StatusCompleted), 1)
		assert.Empty(t, store.TasksByStatus(models.StatusInProgress))
	})

	t.Run("by priority", func(t *testing.T) {
		got := store.TasksByPriority(models.PriorityHigh)
		require.Len(t, got, 1)
		assert.Equal(t, u.ID, got[0].ID)
	})

	t.Run("by date", func(t *testing.T) {
		got := store.TasksByDate(l.Deadline)
		require.Len(t, got, 1)
		assert.Equal(t, l.ID, got[0].ID)
	})

	t.Run("overdue excludes completed", func(t *testing.T) {
		got := store.OverdueTasks()
		require.Len(t, got, 1)
		assert.Equal(t, u.ID, got[0].ID)
	})
}

func TestProjectsWithTag(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tagged, err := store.AddProject(ctx, ProjectDraft{Title: "P1", Tags: models.StringList{"q3"}})
	require.NoError(t, err)
	_, err = store.AddProject(ctx, ProjectDraft{Title: "P2"})
	require.NoError(t, err)

	got := store.ProjectsWithTag("q3")
	require.Len(t, got, 1)
	assert.Equal(t, tagged.ID, got[0].ID)
}
