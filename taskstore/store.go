package taskstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskory/models"
)

// Actor identifies the user a Store belongs to. Every mutation is scoped to
// the actor's organization.
type Actor struct {
	ID             string
	Name           string
	Role           string
	OrganizationID string
}

func (a Actor) scope() Scope {
	return Scope{OrganizationID: a.OrganizationID, UserID: a.ID, Role: a.Role}
}

// Store is the session-scoped read model for tasks and projects. It mirrors
// the remote records fetched at session start and applies every mutation
// write-then-reflect: the remote write happens first, and only on success is
// the equivalent change applied to the in-memory collections. There is no
// rollback path because nothing is applied before the remote accepts the
// write, and no retry, versioning or request cancellation: if two mutations
// on the same record race, the last response to resolve wins.
//
// A Task that belongs to a Project is mirrored in two places: the flat task
// list and the owning project's embedded task list. Both are updated inside a
// single critical section so no reader can observe a torn state.
type Store struct {
	actor  Actor
	remote Remote
	now    func() time.Time

	mu       sync.Mutex
	tasks    []models.Task
	projects []models.Project
	score    models.DailyScore
}

// New builds an empty Store for the given actor. Call LoadAll to populate it.
func New(actor Actor, remote Remote) *Store {
	return &Store{
		actor:  actor,
		remote: remote,
		now:    time.Now,
	}
}

// LoadAll replaces both collections with the remote-fetched, organization
// scoped snapshot. On any error both collections are cleared; there is no
// partial merge.
func (s *Store) LoadAll(ctx context.Context) error {
	if s.actor.OrganizationID == "" {
		return ErrNoOrganization
	}

	projects, err := s.remote.FetchProjects(ctx, s.actor.scope())
	if err != nil {
		s.clear()
		return fmt.Errorf("load projects: %w", err)
	}
	tasks, err := s.remote.FetchTasks(ctx, s.actor.scope())
	if err != nil {
		s.clear()
		return fmt.Errorf("load tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.projects = projects
	// Rebuild every embedded list from the flat list so both views agree
	// from the first render on.
	for i := range s.projects {
		s.projects[i].Tasks = nil
		for _, t := range s.tasks {
			if t.InProject(s.projects[i].ID) {
				s.projects[i].Tasks = append(s.projects[i].Tasks, t)
			}
		}
	}
	s.recomputeScoreLocked()
	return nil
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.projects = nil
	s.recomputeScoreLocked()
}

// Actor returns the user this store was built for.
func (s *Store) Actor() Actor {
	return s.actor
}

// Tasks returns a snapshot copy of the flat task list.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Projects returns a snapshot copy of the project list, embedded task lists
// included.
func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	for i := range out {
		tasks := make([]models.Task, len(out[i].Tasks))
		copy(tasks, out[i].Tasks)
		out[i].Tasks = tasks
	}
	return out
}

// DailyScore returns the score computed after the most recent task change.
func (s *Store) DailyScore() models.DailyScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// findTaskLocked returns a copy of the task with the given id.
func (s *Store) findTaskLocked(id string) (models.Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return models.Task{}, false
}

func (s *Store) findProjectLocked(id string) (models.Project, bool) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return s.projects[i], true
		}
	}
	return models.Project{}, false
}

// lookupTask copies a task out of the cache without holding the lock across
// the caller's remote round-trip.
func (s *Store) lookupTask(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTaskLocked(id)
}

func (s *Store) lookupProject(id string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findProjectLocked(id)
}

// replaceTaskLocked swaps the task into the flat list and into whichever
// embedded project list it appears in. Both views change in one transition.
func (s *Store) replaceTaskLocked(updated models.Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			break
		}
	}
	for i := range s.projects {
		for j := range s.projects[i].Tasks {
			if s.projects[i].Tasks[j].ID == updated.ID {
				s.projects[i].Tasks[j] = updated
			}
		}
	}
}

// removeTaskLocked drops the task from the flat list and from any embedded
// project list.
func (s *Store) removeTaskLocked(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	for i := range s.projects {
		for j := range s.projects[i].Tasks {
			if s.projects[i].Tasks[j].ID == id {
				s.projects[i].Tasks = append(s.projects[i].Tasks[:j], s.projects[i].Tasks[j+1:]...)
				break
			}
		}
	}
}

// attachTaskLocked inserts the task into the embedded list of its project,
// removing it from any other project's list first.
func (s *Store) attachTaskLocked(t models.Task) {
	for i := range s.projects {
		for j := range s.projects[i].Tasks {
			if s.projects[i].Tasks[j].ID == t.ID {
				s.projects[i].Tasks = append(s.projects[i].Tasks[:j], s.projects[i].Tasks[j+1:]...)
				break
			}
		}
	}
	if t.ProjectID == nil {
		return
	}
	for i := range s.projects {
		if s.projects[i].ID == *t.ProjectID {
			s.projects[i].Tasks = append(s.projects[i].Tasks, t)
			return
		}
	}
}
