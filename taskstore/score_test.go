package taskstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskory/models"
)

func TestDailyScore_EmptyCacheIsZero(t *testing.T) {
	store, _ := newTestStore(t)
	score := store.DailyScore()
	assert.Equal(t, 0, score.TotalTasks)
	assert.Equal(t, 0, score.CompletedTasks)
	assert.Equal(t, 0.0, score.Percentage)
}

func TestDailyScore_TracksCompletions(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		created, err := store.AddTask(ctx, draft("t"))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	require.NoError(t, store.UpdateTaskStatus(ctx, ids[0], models.StatusCompleted))
	score := store.DailyScore()
	assert.Equal(t, 4, score.TotalTasks)
	assert.Equal(t, 1, score.CompletedTasks)
	assert.Equal(t, 25.0, score.Percentage)

	require.NoError(t, store.UpdateTaskStatus(ctx, ids[1], models.StatusCompleted))
	assert.Equal(t, 50.0, store.DailyScore().Percentage)

	// Reopening pulls the score back down.
	require.NoError(t, store.UpdateTaskStatus(ctx, ids[0], models.StatusToDo))
	score = store.DailyScore()
	assert.Equal(t, 1, score.CompletedTasks)
	assert.Equal(t, 25.0, score.Percentage)
}

func TestDailyScore_AlwaysWithinBounds(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := store.AddTask(ctx, draft("t"))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	for _, id := range ids {
		require.NoError(t, store.UpdateTaskStatus(ctx, id, models.StatusCompleted))
		score := store.DailyScore()
		assert.GreaterOrEqual(t, score.Percentage, 0.0)
		assert.LessOrEqual(t, score.Percentage, 100.0)
	}
	assert.Equal(t, 100.0, store.DailyScore().Percentage)

	for _, id := range ids {
		require.NoError(t, store.DeleteTask(ctx, id))
	}
	assert.Equal(t, 0.0, store.DailyScore().Percentage)
}

func TestDailyScore_IgnoresCompletionsFromOtherDays(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	remote := newFakeRemote()
	remote.tasks["t-old"] = models.Task{
		ID:             "t-old",
		Status:         models.StatusCompleted,
		CompletedAt:    &yesterday,
		OrganizationID: testOrg,
	}
	remote.tasks["t-open"] = models.Task{ID: "t-open", Status: models.StatusToDo, OrganizationID: testOrg}

	store := New(testActor(), remote)
	require.NoError(t, store.LoadAll(context.Background()))

	score := store.DailyScore()
	assert.Equal(t, 2, score.TotalTasks)
	assert.Equal(t, 0, score.CompletedTasks)
	assert.Equal(t, 0.0, score.Percentage)
}
