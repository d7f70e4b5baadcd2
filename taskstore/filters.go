package taskstore

import (
	"time"

	"taskory/models"
)

// Query accessors: pure, synchronous filters over the current cache. None of
// them make a remote call and none of them fail.

func (s *Store) TasksWithTag(tag string) []models.Task {
	return s.filterTasks(func(t models.Task) bool {
		return t.Tags.Contains(tag)
	})
}

func (s *Store) TasksByStatus(status string) []models.Task {
	return s.filterTasks(func(t models.Task) bool {
		return t.Status == status
	})
}

func (s *Store) TasksByPriority(priority string) []models.Task {
	return s.filterTasks(func(t models.Task) bool {
		return t.Priority == priority
	})
}

// TasksByDate returns tasks whose deadline falls on the given calendar day.
func (s *Store) TasksByDate(date time.Time) []models.Task {
	return s.filterTasks(func(t models.Task) bool {
		return sameDay(t.Deadline, date)
	})
}

// OverdueTasks returns incomplete tasks whose deadline has passed.
func (s *Store) OverdueTasks() []models.Task {
	now := s.now()
	return s.filterTasks(func(t models.Task) bool {
		return t.Status != models.StatusCompleted && t.Deadline.Before(now)
	})
}

func (s *Store) ProjectsWithTag(tag string) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Project
	for _, p := range s.projects {
		if p.Tags.Contains(tag) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) filterTasks(keep func(models.Task) bool) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
