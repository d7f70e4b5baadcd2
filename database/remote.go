package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"taskory/models"
	"taskory/taskstore"
)

// TaskRemote is the GORM-backed implementation of the store's data-access
// boundary. All reads go through row structs and an explicit per-entity
// mapping step so malformed remote rows fail loudly instead of silently
// defaulting.
type TaskRemote struct {
	db *gorm.DB
}

func NewTaskRemote(db *gorm.DB) *TaskRemote {
	return &TaskRemote{db: db}
}

// ParseError reports a remote row that could not be mapped to an entity.
type ParseError struct {
	Entity string
	ID     string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %s: field %s: %s", e.Entity, e.ID, e.Field, e.Reason)
}

// taskRow mirrors the tasks table. Nullable columns stay nullable here; the
// mapping step decides which absences are tolerated.
type taskRow struct {
	ID              string            `gorm:"column:id"`
	UserID          string            `gorm:"column:user_id"`
	ProjectID       sql.NullString    `gorm:"column:project_id"`
	Title           string            `gorm:"column:title"`
	Description     sql.NullString    `gorm:"column:description"`
	Deadline        time.Time         `gorm:"column:deadline"`
	Priority        string            `gorm:"column:priority"`
	Status          string            `gorm:"column:status"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
	CompletedAt     sql.NullTime      `gorm:"column:completed_at"`
	CompletedByID   sql.NullString    `gorm:"column:completed_by_id"`
	CompletedByName sql.NullString    `gorm:"column:completed_by_name"`
	AssignedToID    sql.NullString    `gorm:"column:assigned_to_id"`
	AssignedToName  sql.NullString    `gorm:"column:assigned_to_name"`
	AssignedToIDs   models.StringList `gorm:"column:assigned_to_ids"`
	AssignedToNames models.StringList `gorm:"column:assigned_to_names"`
	Tags            models.StringList `gorm:"column:tags"`
	Cost            sql.NullFloat64   `gorm:"column:cost"`
	OrganizationID  string            `gorm:"column:organization_id"`
}

func mapTaskRow(row taskRow) (models.Task, error) {
	if row.ID == "" {
		return models.Task{}, &ParseError{Entity: "task", ID: "?", Field: "id", Reason: "empty"}
	}
	if row.OrganizationID == "" {
		return models.Task{}, &ParseError{Entity: "task", ID: row.ID, Field: "organization_id", Reason: "empty"}
	}
	if !models.ValidStatus(row.Status) {
		return models.Task{}, &ParseError{Entity: "task", ID: row.ID, Field: "status", Reason: fmt.Sprintf("unknown value %q", row.Status)}
	}
	if !models.ValidPriority(row.Priority) {
		return models.Task{}, &ParseError{Entity: "task", ID: row.ID, Field: "priority", Reason: fmt.Sprintf("unknown value %q", row.Priority)}
	}
	return models.Task{
		ID:              row.ID,
		UserID:          row.UserID,
		ProjectID:       nullableString(row.ProjectID),
		Title:           row.Title,
		Description:     row.Description.String, // optional column, empty is fine
		Deadline:        row.Deadline,
		Priority:        row.Priority,
		Status:          row.Status,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		CompletedAt:     nullableTime(row.CompletedAt),
		CompletedByID:   nullableString(row.CompletedByID),
		CompletedByName: nullableString(row.CompletedByName),
		AssignedToID:    nullableString(row.AssignedToID),
		AssignedToName:  nullableString(row.AssignedToName),
		AssignedToIDs:   row.AssignedToIDs,
		AssignedToNames: row.AssignedToNames,
		Tags:            row.Tags,
		Cost:            row.Cost.Float64,
		OrganizationID:  row.OrganizationID,
	}, nil
}

type projectRow struct {
	ID             string            `gorm:"column:id"`
	Title          string            `gorm:"column:title"`
	Description    sql.NullString    `gorm:"column:description"`
	StartDate      sql.NullTime      `gorm:"column:start_date"`
	EndDate        sql.NullTime      `gorm:"column:end_date"`
	ManagerID      sql.NullString    `gorm:"column:manager_id"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
	TeamMemberIDs  models.StringList `gorm:"column:team_member_ids"`
	Budget         sql.NullFloat64   `gorm:"column:budget"`
	BudgetSpent    sql.NullFloat64   `gorm:"column:budget_spent"`
	IsCompleted    bool              `gorm:"column:is_completed"`
	Tags           models.StringList `gorm:"column:tags"`
	OrganizationID string            `gorm:"column:organization_id"`
}

func mapProjectRow(row projectRow) (models.Project, error) {
	if row.ID == "" {
		return models.Project{}, &ParseError{Entity: "project", ID: "?", Field: "id", Reason: "empty"}
	}
	if row.OrganizationID == "" {
		return models.Project{}, &ParseError{Entity: "project", ID: row.ID, Field: "organization_id", Reason: "empty"}
	}
	return models.Project{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description.String,
		StartDate:      nullableTime(row.StartDate),
		EndDate:        nullableTime(row.EndDate),
		ManagerID:      nullableString(row.ManagerID),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		TeamMemberIDs:  row.TeamMemberIDs,
		Budget:         row.Budget.Float64,
		BudgetSpent:    row.BudgetSpent.Float64,
		IsCompleted:    row.IsCompleted,
		Tags:           row.Tags,
		OrganizationID: row.OrganizationID,
	}, nil
}

type commentRow struct {
	ID             string         `gorm:"column:id"`
	Text           string         `gorm:"column:text"`
	UserID         string         `gorm:"column:user_id"`
	UserName       sql.NullString `gorm:"column:user_name"`
	TaskID         sql.NullString `gorm:"column:task_id"`
	ProjectID      sql.NullString `gorm:"column:project_id"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      sql.NullTime   `gorm:"column:updated_at"`
	OrganizationID string         `gorm:"column:organization_id"`
}

func mapCommentRow(row commentRow) (models.TaskComment, error) {
	if row.ID == "" {
		return models.TaskComment{}, &ParseError{Entity: "comment", ID: "?", Field: "id", Reason: "empty"}
	}
	return models.TaskComment{
		ID:             row.ID,
		Text:           row.Text,
		UserID:         row.UserID,
		UserName:       row.UserName.String,
		TaskID:         nullableString(row.TaskID),
		ProjectID:      nullableString(row.ProjectID),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      nullableTime(row.UpdatedAt),
		OrganizationID: row.OrganizationID,
	}, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// visibleTasks narrows the tasks query to the caller's visibility: admins see
// the whole organization; everyone else sees their own tasks, tasks assigned
// to them, and tasks in projects they manage.
func (r *TaskRemote) visibleTasks(q *gorm.DB, scope taskstore.Scope) *gorm.DB {
	q = q.Where("organization_id = ?", scope.OrganizationID)
	if scope.Role == models.RoleAdmin || scope.Role == models.RoleSuperadmin {
		return q
	}
	managed := r.db.Table("projects").
		Select("id").
		Where("organization_id = ? AND manager_id = ?", scope.OrganizationID, scope.UserID)
	return q.Where(
		"user_id = ? OR assigned_to_id = ? OR JSON_CONTAINS(assigned_to_ids, JSON_QUOTE(?)) OR project_id IN (?)",
		scope.UserID, scope.UserID, scope.UserID, managed,
	)
}

func (r *TaskRemote) FetchTasks(ctx context.Context, scope taskstore.Scope) ([]models.Task, error) {
	var rows []taskRow
	q := r.db.WithContext(ctx).Table("tasks").Order("created_at ASC")
	if err := r.visibleTasks(q, scope).Find(&rows).Error; err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
		ids = append(ids, task.ID)
	}
	if len(ids) == 0 {
		return tasks, nil
	}

	// Attach comments in one query, grouped by task.
	var crows []commentRow
	if err := r.db.WithContext(ctx).Table("comments").
		Where("organization_id = ? AND task_id IN ?", scope.OrganizationID, ids).
		Order("created_at ASC").
		Find(&crows).Error; err != nil {
		return nil, err
	}
	byTask := make(map[string][]models.TaskComment)
	for _, row := range crows {
		comment, err := mapCommentRow(row)
		if err != nil {
			return nil, err
		}
		if comment.TaskID != nil {
			byTask[*comment.TaskID] = append(byTask[*comment.TaskID], comment)
		}
	}
	for i := range tasks {
		tasks[i].Comments = byTask[tasks[i].ID]
	}
	return tasks, nil
}

func (r *TaskRemote) FetchProjects(ctx context.Context, scope taskstore.Scope) ([]models.Project, error) {
	var rows []projectRow
	q := r.db.WithContext(ctx).Table("projects").
		Where("organization_id = ?", scope.OrganizationID).
		Order("created_at ASC")
	if scope.Role != models.RoleAdmin && scope.Role != models.RoleSuperadmin {
		q = q.Where(
			"manager_id = ? OR JSON_CONTAINS(team_member_ids, JSON_QUOTE(?))",
			scope.UserID, scope.UserID,
		)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		project, err := mapProjectRow(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *TaskRemote) InsertTask(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRemote) UpdateTask(ctx context.Context, task *models.Task) error {
	// Full-row write scoped by organization; Select("*") keeps cleared
	// nullable columns (completion metadata, project ref) writable.
	// RowsAffected counts matched rows (clientFoundRows in the DSN), so a
	// write of identical values still reports the row as found.
	res := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND organization_id = ?", task.ID, task.OrganizationID).
		Select("*").Omit("id", "created_at", "organization_id").
		Updates(task)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %s not found in organization", task.ID)
	}
	return nil
}

func (r *TaskRemote) DeleteTask(ctx context.Context, organizationID, taskID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", taskID, organizationID).
		Delete(&models.Task{}).Error
}

func (r *TaskRemote) InsertProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *TaskRemote) UpdateProject(ctx context.Context, project *models.Project) error {
	res := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND organization_id = ?", project.ID, project.OrganizationID).
		Select("*").Omit("id", "created_at", "organization_id").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %s not found in organization", project.ID)
	}
	return nil
}

func (r *TaskRemote) DeleteProject(ctx context.Context, organizationID, projectID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", projectID, organizationID).
		Delete(&models.Project{}).Error
}

func (r *TaskRemote) InsertComment(ctx context.Context, comment *models.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}
