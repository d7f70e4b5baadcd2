package taskstore

import (
	"context"

	"taskory/models"
)

// Scope narrows remote fetches to the acting user's organization and
// visibility. Admins and superadmins see every record in the organization;
// managers and members see their own tasks, tasks assigned to them, and tasks
// in projects they manage.
type Scope struct {
	OrganizationID string
	UserID         string
	Role           string
}

// Remote is the data-access boundary the store writes through. Implementations
// persist to the backing database; errors carry a human-readable message and
// leave the store's in-memory state untouched.
type Remote interface {
	FetchTasks(ctx context.Context, scope Scope) ([]models.Task, error)
	FetchProjects(ctx context.Context, scope Scope) ([]models.Project, error)

	InsertTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, organizationID, taskID string) error

	InsertProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, organizationID, projectID string) error

	InsertComment(ctx context.Context, comment *models.TaskComment) error
}
