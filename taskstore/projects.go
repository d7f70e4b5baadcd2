package taskstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskory/models"
)

// ProjectDraft carries the caller-provided fields for a new project.
type ProjectDraft struct {
	Title         string
	Description   string
	StartDate     *time.Time
	EndDate       *time.Time
	ManagerID     *string
	TeamMemberIDs models.StringList
	Budget        float64
	Tags          models.StringList
}

// AddProject creates the project remotely and appends it with an empty task
// list.
func (s *Store) AddProject(ctx context.Context, draft ProjectDraft) (models.Project, error) {
	if s.actor.OrganizationID == "" {
		return models.Project{}, ErrNoOrganization
	}

	now := s.now()
	managerID := draft.ManagerID
	if managerID == nil {
		id := s.actor.ID
		managerID = &id
	}
	project := models.Project{
		ID:             uuid.NewString(),
		Title:          draft.Title,
		Description:    draft.Description,
		StartDate:      draft.StartDate,
		EndDate:        draft.EndDate,
		ManagerID:      managerID,
		CreatedAt:      now,
		UpdatedAt:      now,
		TeamMemberIDs:  draft.TeamMemberIDs,
		Budget:         draft.Budget,
		Tags:           draft.Tags,
		OrganizationID: s.actor.OrganizationID,
	}

	if err := s.remote.InsertProject(ctx, &project); err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, project)
	return project, nil
}

// UpdateProject writes the patched record remotely, then swaps it into the
// project list. A missing id is a no-op reported as ErrProjectNotFound.
func (s *Store) UpdateProject(ctx context.Context, projectID string, patch models.ProjectPatch) error {
	project, ok := s.lookupProject(projectID)
	if !ok {
		return ErrProjectNotFound
	}

	updated := project
	patch.Apply(&updated)
	updated.UpdatedAt = s.now()

	if err := s.remote.UpdateProject(ctx, &updated); err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			updated.Tasks = s.projects[i].Tasks
			s.projects[i] = updated
			break
		}
	}
	return nil
}

// DeleteProject detaches every task that references the project, then removes
// the project row. Tasks are detached remotely one by one before the project
// deletion is attempted; the first failure aborts with local state untouched.
// A missing id is a silent no-op.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	project, ok := s.lookupProject(projectID)
	if !ok {
		return nil
	}

	s.mu.Lock()
	var affected []models.Task
	for _, t := range s.tasks {
		if t.InProject(projectID) {
			affected = append(affected, t)
		}
	}
	s.mu.Unlock()

	now := s.now()
	for i := range affected {
		detached := affected[i]
		detached.ProjectID = nil
		detached.UpdatedAt = now
		if err := s.remote.UpdateTask(ctx, &detached); err != nil {
			return fmt.Errorf("detach task %s: %w", detached.ID, err)
		}
	}
	if err := s.remote.DeleteProject(ctx, project.OrganizationID, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].InProject(projectID) {
			s.tasks[i].ProjectID = nil
			s.tasks[i].UpdatedAt = now
		}
	}
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	s.recomputeScoreLocked()
	return nil
}

// AddTeamMemberToProject appends the user to the project's team member list.
// Adding a member twice is a no-op.
func (s *Store) AddTeamMemberToProject(ctx context.Context, projectID, userID string) error {
	project, ok := s.lookupProject(projectID)
	if !ok {
		return ErrProjectNotFound
	}
	if project.TeamMemberIDs.Contains(userID) {
		return nil
	}
	members := append(models.StringList{}, project.TeamMemberIDs...)
	members = append(members, userID)
	return s.UpdateProject(ctx, projectID, models.ProjectPatch{TeamMemberIDs: &members})
}

// RemoveTeamMemberFromProject drops the user from the project's team member
// list.
func (s *Store) RemoveTeamMemberFromProject(ctx context.Context, projectID, userID string) error {
	project, ok := s.lookupProject(projectID)
	if !ok {
		return ErrProjectNotFound
	}
	var members models.StringList
	for _, id := range project.TeamMemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}
	return s.UpdateProject(ctx, projectID, models.ProjectPatch{TeamMemberIDs: &members})
}
