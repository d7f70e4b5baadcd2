package taskstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskory/models"
)

const testOrg = "org-1"

func testActor() Actor {
	return Actor{ID: "user-1", Name: "Ada", Role: models.RoleManager, OrganizationID: testOrg}
}

func newTestStore(t *testing.T) (*Store, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote()
	store := New(testActor(), remote)
	require.NoError(t, store.LoadAll(context.Background()))
	return store, remote
}

func draft(title string) TaskDraft {
	return TaskDraft{
		Title:       title,
		Description: "desc",
		Deadline:    time.Now().Add(48 * time.Hour),
		Priority:    models.PriorityMedium,
		Status:      models.StatusToDo,
	}
}

// requireConsistent asserts the invariant that every project's embedded task
// list equals the filter of the flat list by project id.
func requireConsistent(t *testing.T, s *Store) {
	t.Helper()
	tasks := s.Tasks()
	for _, p := range s.Projects() {
		var want []string
		for _, task := range tasks {
			if task.InProject(p.ID) {
				want = append(want, task.ID)
			}
		}
		var got []string
		for _, task := range p.Tasks {
			got = append(got, task.ID)
		}
		assert.ElementsMatch(t, want, got, "project %s embedded list diverged", p.ID)
	}
}

func TestAddTask_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	d := draft("Write report")
	d.Tags = models.StringList{"writing"}
	d.Cost = 125.50
	created, err := store.AddTask(ctx, d)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, testOrg, created.OrganizationID)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, d.Title, got.Title)
	assert.Equal(t, d.Description, got.Description)
	assert.Equal(t, d.Priority, got.Priority)
	assert.Equal(t, d.Status, got.Status)
	assert.Equal(t, d.Tags, got.Tags)
	assert.Equal(t, d.Cost, got.Cost)
	assert.True(t, got.Deadline.Equal(d.Deadline))
}

func TestAddTask_AppendsToProjectList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "Launch"})
	require.NoError(t, err)

	d := draft("Prepare launch")
	d.ProjectID = &project.ID
	created, err := store.AddTask(ctx, d)
	require.NoError(t, err)

	projects := store.Projects()
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Tasks, 1)
	assert.Equal(t, created.ID, projects[0].Tasks[0].ID)
	requireConsistent(t, store)
}

func TestAddTask_RemoteFailureLeavesStateUntouched(t *testing.T) {
	store, remote := newTestStore(t)
	ctx := context.Background()

	remote.failNext = true
	_, err := store.AddTask(ctx, draft("doomed"))
	require.Error(t, err)

	// No optimistic append happened before the write, so nothing to roll back.
	assert.Empty(t, store.Tasks())
	assert.Equal(t, 0, store.DailyScore().TotalTasks)
}

func TestAddTask_NoOrganizationFailsFast(t *testing.T) {
	remote := newFakeRemote()
	store := New(Actor{ID: "user-1", Name: "Ada"}, remote)

	_, err := store.AddTask(context.Background(), draft("x"))
	assert.ErrorIs(t, err, ErrNoOrganization)
	assert.Equal(t, 0, remote.callCount())
}

func TestUpdateTask_EmptyPatchRefreshesOnlyUpdatedAt(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.AddTask(ctx, draft("stable"))
	require.NoError(t, err)

	// Advance the clock so the refresh is observable.
	later := created.UpdatedAt.Add(time.Minute)
	store.now = func() time.Time { return later }

	require.NoError(t, store.UpdateTask(ctx, created.ID, models.TaskPatch{}))

	got := store.Tasks()[0]
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Status, got.Status)
	assert.Equal(t, created.Priority, got.Priority)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.True(t, got.Deadline.Equal(created.Deadline))
}

func TestUpdateTask_MissingIDIsReportedNoOp(t *testing.T) {
	store, remote := newTestStore(t)
	before := remote.callCount()

	err := store.UpdateTask(context.Background(), "nope", models.TaskPatch{})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, before, remote.callCount())
}

func TestUpdateTask_PatchesBothCollections(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "P"})
	require.NoError(t, err)
	d := draft("old title")
	d.ProjectID = &project.ID
	created, err := store.AddTask(ctx, d)
	require.NoError(t, err)

	title := "new title"
	require.NoError(t, store.UpdateTask(ctx, created.ID, models.TaskPatch{Title: &title}))

	assert.Equal(t, title, store.Tasks()[0].Title)
	assert.Equal(t, title, store.Projects()[0].Tasks[0].Title)
	requireConsistent(t, store)
}

func TestUpdateTaskStatus_CompletionMetadata(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.AddTask(ctx, draft("finish me"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateTaskStatus(ctx, created.ID, models.StatusCompleted))

	got := store.Tasks()[0]
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.CompletedByID)
	require.NotNil(t, got.CompletedByName)
	assert.Equal(t, "user-1", *got.CompletedByID)
	assert.Equal(t, "Ada", *got.CompletedByName)

	// Reopening clears all completion metadata.
	require.NoError(t, store.UpdateTaskStatus(ctx, created.ID, models.StatusToDo))
	got = store.Tasks()[0]
	assert.Equal(t, models.StatusToDo, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Nil(t, got.CompletedByID)
	assert.Nil(t, got.CompletedByName)
}

func TestUpdateTaskStatus_OrganizationMismatchRejected(t *testing.T) {
	store, remote := newTestStore(t)
	ctx := context.Background()

	created, err := store.AddTask(ctx, draft("foreign"))
	require.NoError(t, err)

	// Simulate a task from a different tenant slipping into the cache.
	store.mu.Lock()
	store.tasks[0].OrganizationID = "org-2"
	store.mu.Unlock()

	before := remote.callCount()
	err = store.UpdateTaskStatus(ctx, created.ID, models.StatusCompleted)
	assert.ErrorIs(t, err, ErrOrganizationMismatch)
	assert.Equal(t, before, remote.callCount())
	assert.Equal(t, models.StatusToDo, store.Tasks()[0].Status)
}

func TestUpdateTaskStatus_RemoteFailureNoRollbackNeeded(t *testing.T) {
	store, remote := newTestStore(t)
	ctx := context.Background()

	created, err := store.AddTask(ctx, draft("flaky"))
	require.NoError(t, err)

	remote.failNext = true
	err = store.UpdateTaskStatus(ctx, created.ID, models.StatusCompleted)
	require.Error(t, err)

	got := store.Tasks()[0]
	assert.Equal(t, models.StatusToDo, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestDeleteTask_MissingIDIsNoOp(t *testing.T) {
	store, remote := newTestStore(t)
	before := remote.callCount()

	assert.NoError(t, store.DeleteTask(context.Background(), "ghost"))
	assert.Equal(t, before, remote.callCount())
}

func TestDeleteTask_RemovesFromProjectList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "P"})
	require.NoError(t, err)
	d := draft("t")
	d.ProjectID = &project.ID
	created, err := store.AddTask(ctx, d)
	require.NoError(t, err)

	require.NoError(t, store.DeleteTask(ctx, created.ID))
	assert.Empty(t, store.Tasks())
	assert.Empty(t, store.Projects()[0].Tasks)
	requireConsistent(t, store)
}

func TestTaskLifecycle_ConsistencyInvariant(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "P"})
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		d := draft(title)
		if title != "c" {
			d.ProjectID = &project.ID
		}
		created, err := store.AddTask(ctx, d)
		require.NoError(t, err)
		ids = append(ids, created.ID)
		requireConsistent(t, store)
	}

	require.NoError(t, store.DeleteTask(ctx, ids[1]))
	requireConsistent(t, store)
	require.NoError(t, store.AssignTaskToProject(ctx, ids[2], project.ID))
	requireConsistent(t, store)
	require.NoError(t, store.AssignTaskToProject(ctx, ids[0], ""))
	requireConsistent(t, store)
	require.NoError(t, store.DeleteTask(ctx, ids[3]))
	requireConsistent(t, store)
}

func TestDeleteProject_DetachesTasks(t *testing.T) {
	store, remote := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "Doomed"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		d := draft("t")
		d.ProjectID = &project.ID
		_, err := store.AddTask(ctx, d)
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteProject(ctx, project.ID))

	assert.Empty(t, store.Projects())
	tasks := store.Tasks()
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Nil(t, task.ProjectID)
	}
	// The remote rows were detached too, before the project row went away.
	for _, task := range remote.tasks {
		assert.Nil(t, task.ProjectID)
	}
	_, stillThere := remote.projects[project.ID]
	assert.False(t, stillThere)
}

func TestDeleteProject_DetachFailureAborts(t *testing.T) {
	store, remote := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "Sticky"})
	require.NoError(t, err)
	d := draft("t")
	d.ProjectID = &project.ID
	_, err = store.AddTask(ctx, d)
	require.NoError(t, err)

	remote.failNext = true
	require.Error(t, store.DeleteProject(ctx, project.ID))

	// Local state untouched: project still present, task still attached.
	require.Len(t, store.Projects(), 1)
	require.NotNil(t, store.Tasks()[0].ProjectID)
	requireConsistent(t, store)
}

func TestUpdateProject_MissingIDIsReportedNoOp(t *testing.T) {
	store, remote := newTestStore(t)
	before := remote.callCount()

	err := store.UpdateProject(context.Background(), "nope", models.ProjectPatch{})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.Equal(t, before, remote.callCount())
}

func TestAddCommentToTask_AppearsInBothCollections(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "P"})
	require.NoError(t, err)
	d := draft("commented")
	d.ProjectID = &project.ID
	created, err := store.AddTask(ctx, d)
	require.NoError(t, err)

	err = store.AddCommentToTask(ctx, created.ID, CommentDraft{
		UserID: "user-2", UserName: "Grace", Text: "looks good",
	})
	require.NoError(t, err)

	flat := store.Tasks()[0]
	require.Len(t, flat.Comments, 1)
	assert.Equal(t, "looks good", flat.Comments[0].Text)
	assert.Equal(t, testOrg, flat.Comments[0].OrganizationID)

	embedded := store.Projects()[0].Tasks[0]
	require.Len(t, embedded.Comments, 1)
	assert.Equal(t, flat.Comments[0].ID, embedded.Comments[0].ID)
}

func TestAssignTaskToUser_SetsAssigneeEverywhere(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	project, err := store.AddProject(ctx, ProjectDraft{Title: "P"})
	require.NoError(t, err)
	d := draft("assign me")
	d.ProjectID = &project.ID
	created, err := store.AddTask(ctx, d)
	require.NoError(t, err)

	require.NoError(t, store.AssignTaskToUser(ctx, created.ID, "user-9", "Lin"))

	for _, got := range []models.Task{store.Tasks()[0], store.Projects()[0].Tasks[0]} {
		require.NotNil(t, got.AssignedToID)
		require.NotNil(t, got.AssignedToName)
		assert.Equal(t, "user-9", *got.AssignedToID)
	}
}

func TestLoadAll_ErrorClearsCollections(t *testing.T) {
	store, remote := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddTask(ctx, draft("t"))
	require.NoError(t, err)
	require.Len(t, store.Tasks(), 1)

	remote.fetchErr = errors.New("backend unavailable")
	require.Error(t, store.LoadAll(ctx))

	assert.Empty(t, store.Tasks())
	assert.Empty(t, store.Projects())
	assert.Equal(t, 0, store.DailyScore().TotalTasks)
}

func TestLoadAll_RebuildsEmbeddedLists(t *testing.T) {
	remote := newFakeRemote()
	projectID := "proj-1"
	remote.projects[projectID] = models.Project{ID: projectID, Title: "P", OrganizationID: testOrg}
	remote.tasks["t-1"] = models.Task{ID: "t-1", Title: "a", ProjectID: &projectID, OrganizationID: testOrg}
	remote.tasks["t-2"] = models.Task{ID: "t-2", Title: "b", OrganizationID: testOrg}

	store := New(testActor(), remote)
	require.NoError(t, store.LoadAll(context.Background()))

	require.Len(t, store.Tasks(), 2)
	projects := store.Projects()
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Tasks, 1)
	assert.Equal(t, "t-1", projects[0].Tasks[0].ID)
	requireConsistent(t, store)
}

func TestManager_InitAndTeardown(t *testing.T) {
	remote := newFakeRemote()
	mgr := NewManager(remote)
	ctx := context.Background()

	store, err := mgr.Init(ctx, testActor())
	require.NoError(t, err)

	again, err := mgr.Session(ctx, testActor())
	require.NoError(t, err)
	assert.Same(t, store, again)

	mgr.Teardown("user-1")
	fresh, err := mgr.Session(ctx, testActor())
	require.NoError(t, err)
	assert.NotSame(t, store, fresh)
}

func TestManager_FailedLoadIsRetriedNotCached(t *testing.T) {
	remote := newFakeRemote()
	remote.tasks["t-1"] = models.Task{ID: "t-1", OrganizationID: testOrg, UserID: "user-1",
		Title: "Visible", Status: models.StatusToDo, Priority: models.PriorityMedium}
	mgr := NewManager(remote)
	ctx := context.Background()

	remote.fetchErr = errors.New("backend unavailable")
	_, err := mgr.Init(ctx, testActor())
	require.Error(t, err)

	// The failed load must not leave an empty store behind: once the backend
	// recovers, Session loads the real snapshot.
	remote.fetchErr = nil
	store, err := mgr.Session(ctx, testActor())
	require.NoError(t, err)
	require.Len(t, store.Tasks(), 1)
	assert.Equal(t, "t-1", store.Tasks()[0].ID)
}
