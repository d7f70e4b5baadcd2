package taskstore

import (
	"context"
	"errors"
	"sync"

	"taskory/models"
)

// fakeRemote is an in-memory Remote for tests. Setting failNext makes the
// next write call fail, which is how the no-rollback behavior is exercised.
type fakeRemote struct {
	mu       sync.Mutex
	tasks    map[string]models.Task
	projects map[string]models.Project
	comments map[string]models.TaskComment

	failNext  bool
	fetchErr  error
	calls     []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		tasks:    make(map[string]models.Task),
		projects: make(map[string]models.Project),
		comments: make(map[string]models.TaskComment),
	}
}

func (f *fakeRemote) fail() error {
	if f.failNext {
		f.failNext = false
		return errors.New("remote write rejected")
	}
	return nil
}

func (f *fakeRemote) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeRemote) FetchTasks(_ context.Context, scope Scope) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("FetchTasks")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.Task
	for _, t := range f.tasks {
		if t.OrganizationID == scope.OrganizationID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRemote) FetchProjects(_ context.Context, scope Scope) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("FetchProjects")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.Project
	for _, p := range f.projects {
		if p.OrganizationID == scope.OrganizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRemote) InsertTask(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertTask")
	if err := f.fail(); err != nil {
		return err
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeRemote) UpdateTask(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateTask")
	if err := f.fail(); err != nil {
		return err
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeRemote) DeleteTask(_ context.Context, _, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTask")
	if err := f.fail(); err != nil {
		return err
	}
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeRemote) InsertProject(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertProject")
	if err := f.fail(); err != nil {
		return err
	}
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeRemote) UpdateProject(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateProject")
	if err := f.fail(); err != nil {
		return err
	}
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeRemote) DeleteProject(_ context.Context, _, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteProject")
	if err := f.fail(); err != nil {
		return err
	}
	delete(f.projects, projectID)
	return nil
}

func (f *fakeRemote) InsertComment(_ context.Context, comment *models.TaskComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertComment")
	if err := f.fail(); err != nil {
		return err
	}
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
