package taskstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskory/models"
)

// TaskDraft carries the fields a caller provides when creating a task.
// Identity, timestamps and organization are filled in by the store.
type TaskDraft struct {
	Title           string
	Description     string
	Deadline        time.Time
	Priority        string
	Status          string
	ProjectID       *string
	AssignedToID    *string
	AssignedToName  *string
	AssignedToIDs   models.StringList
	AssignedToNames models.StringList
	Tags            models.StringList
	Cost            float64
}

// AddTask creates the task remotely and, on success, appends it to the flat
// list and to its project's embedded list. Nothing is applied before the
// remote write succeeds, so a failure needs no rollback.
func (s *Store) AddTask(ctx context.Context, draft TaskDraft) (models.Task, error) {
	if s.actor.OrganizationID == "" {
		return models.Task{}, ErrNoOrganization
	}
	if !models.ValidStatus(draft.Status) {
		draft.Status = models.StatusToDo
	}
	if !models.ValidPriority(draft.Priority) {
		draft.Priority = models.PriorityMedium
	}

	now := s.now()
	task := models.Task{
		ID:              uuid.NewString(),
		UserID:          s.actor.ID,
		ProjectID:       draft.ProjectID,
		Title:           draft.Title,
		Description:     draft.Description,
		Deadline:        draft.Deadline,
		Priority:        draft.Priority,
		Status:          draft.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
		AssignedToID:    draft.AssignedToID,
		AssignedToName:  draft.AssignedToName,
		AssignedToIDs:   draft.AssignedToIDs,
		AssignedToNames: draft.AssignedToNames,
		Tags:            draft.Tags,
		Cost:            draft.Cost,
		OrganizationID:  s.actor.OrganizationID,
	}

	if err := s.remote.InsertTask(ctx, &task); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.attachTaskLocked(task)
	s.recomputeScoreLocked()
	return task, nil
}

// UpdateTask writes the patched record remotely, then applies the same patch
// to the task everywhere it appears. An empty patch still refreshes
// UpdatedAt. A missing id is a no-op reported as ErrTaskNotFound.
func (s *Store) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) error {
	task, ok := s.lookupTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}

	updated := task
	patch.Apply(&updated)
	updated.UpdatedAt = s.now()

	if err := s.remote.UpdateTask(ctx, &updated); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.findTaskLocked(taskID)
	if !ok {
		return nil
	}
	moved := patch.ProjectID != nil
	patch.Apply(&current)
	current.UpdatedAt = updated.UpdatedAt
	s.replaceTaskLocked(current)
	if moved {
		s.attachTaskLocked(current)
	}
	s.recomputeScoreLocked()
	return nil
}

// UpdateTaskStatus transitions the task and applies the completion-metadata
// rule: moving to Completed stamps CompletedAt/CompletedByID/CompletedByName,
// moving anywhere else clears all three. The acting user must belong to the
// same organization as the task; the daily score is recomputed afterwards.
func (s *Store) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	if s.actor.OrganizationID == "" {
		return ErrNoOrganization
	}
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid task status %q", status)
	}
	task, ok := s.lookupTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	if task.OrganizationID != s.actor.OrganizationID {
		return ErrOrganizationMismatch
	}

	now := s.now()
	updated := task
	updated.Status = status
	updated.UpdatedAt = now
	if status == models.StatusCompleted {
		completedBy := s.actor.Name
		if completedBy == "" {
			completedBy = "User"
		}
		updated.CompletedAt = &now
		updated.CompletedByID = &s.actor.ID
		updated.CompletedByName = &completedBy
	} else {
		updated.CompletedAt = nil
		updated.CompletedByID = nil
		updated.CompletedByName = nil
	}

	if err := s.remote.UpdateTask(ctx, &updated); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceTaskLocked(updated)
	s.recomputeScoreLocked()
	return nil
}

// DeleteTask removes the task remotely and from both collections. A missing
// id is a silent no-op.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	task, ok := s.lookupTask(taskID)
	if !ok {
		return nil
	}

	if err := s.remote.DeleteTask(ctx, task.OrganizationID, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeTaskLocked(taskID)
	s.recomputeScoreLocked()
	return nil
}

// AssignTaskToUser sets the single-assignee fields on the task everywhere it
// appears.
func (s *Store) AssignTaskToUser(ctx context.Context, taskID, userID, userName string) error {
	id, name := &userID, &userName
	return s.UpdateTask(ctx, taskID, models.TaskPatch{
		AssignedToID:   &id,
		AssignedToName: &name,
	})
}

// AssignTaskToProject moves the task into the given project; an empty
// projectID detaches it.
func (s *Store) AssignTaskToProject(ctx context.Context, taskID, projectID string) error {
	var ref *string
	if projectID != "" {
		if _, ok := s.lookupProject(projectID); !ok {
			return ErrProjectNotFound
		}
		ref = &projectID
	}
	return s.UpdateTask(ctx, taskID, models.TaskPatch{ProjectID: &ref})
}
