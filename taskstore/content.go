package taskstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"taskory/models"
)

// CommentDraft carries the author and body of a new task comment.
type CommentDraft struct {
	UserID   string
	UserName string
	Text     string
}

// AddCommentToTask inserts the comment remotely and appends it to the task's
// comment list in both the flat list and the embedded project copy.
func (s *Store) AddCommentToTask(ctx context.Context, taskID string, draft CommentDraft) error {
	task, ok := s.lookupTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}

	comment := models.TaskComment{
		ID:             uuid.NewString(),
		Text:           draft.Text,
		UserID:         draft.UserID,
		UserName:       draft.UserName,
		TaskID:         &task.ID,
		CreatedAt:      s.now(),
		OrganizationID: task.OrganizationID,
	}
	if err := s.remote.InsertComment(ctx, &comment); err != nil {
		return fmt.Errorf("add comment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.findTaskLocked(taskID)
	if !ok {
		return nil
	}
	current.Comments = append(append([]models.TaskComment{}, current.Comments...), comment)
	s.replaceTaskLocked(current)
	return nil
}

// AddTagToTask appends the tag if not already present.
func (s *Store) AddTagToTask(ctx context.Context, taskID, tag string) error {
	task, ok := s.lookupTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	if task.Tags.Contains(tag) {
		return nil
	}
	tags := append(models.StringList{}, task.Tags...)
	tags = append(tags, tag)
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Tags: &tags})
}

// RemoveTagFromTask drops the tag from the task.
func (s *Store) RemoveTagFromTask(ctx context.Context, taskID, tag string) error {
	task, ok := s.lookupTask(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	var tags models.StringList
	for _, t := range task.Tags {
		if t != tag {
			tags = append(tags, t)
		}
	}
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Tags: &tags})
}
