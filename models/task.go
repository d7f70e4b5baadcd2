package models

import "time"

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is one of the three task statuses. Any
// transition between valid statuses is legal; the graph is unconstrained.
func ValidStatus(s string) bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusCompleted
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	ID              string        `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID          string        `gorm:"type:char(36);index;not null" json:"user_id"`
	ProjectID       *string       `gorm:"type:char(36);index" json:"project_id,omitempty"`
	Title           string        `gorm:"size:255;not null" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	Deadline        time.Time     `json:"deadline"`
	Priority        string        `gorm:"type:enum('Low','Medium','High');default:'Medium'" json:"priority"`
	Status          string        `gorm:"type:enum('To Do','In Progress','Completed');default:'To Do'" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CompletedByID   *string       `gorm:"type:char(36)" json:"completed_by_id,omitempty"`
	CompletedByName *string       `gorm:"size:100" json:"completed_by_name,omitempty"`
	AssignedToID    *string       `gorm:"type:char(36);index" json:"assigned_to_id,omitempty"`
	AssignedToName  *string       `gorm:"size:100" json:"assigned_to_name,omitempty"`
	AssignedToIDs   StringList    `gorm:"type:json" json:"assigned_to_ids,omitempty"`
	AssignedToNames StringList    `gorm:"type:json" json:"assigned_to_names,omitempty"`
	Tags            StringList    `gorm:"type:json" json:"tags,omitempty"`
	Comments        []TaskComment `gorm:"-" json:"comments,omitempty"`
	Cost            float64       `gorm:"type:decimal(15,2);default:0" json:"cost"`
	OrganizationID  string        `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (Task) TableName() string {
	return "tasks"
}

// InProject reports whether the task belongs to the given project.
func (t *Task) InProject(projectID string) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// TaskPatch carries a partial task update. Nil fields are left untouched.
// Pointer-to-pointer fields distinguish "clear the column" from "no change".
type TaskPatch struct {
	Title           *string
	Description     *string
	Deadline        *time.Time
	Priority        *string
	ProjectID       **string
	AssignedToID    **string
	AssignedToName  **string
	AssignedToIDs   *StringList
	AssignedToNames *StringList
	Tags            *StringList
	Cost            *float64
}

// Apply copies the patch onto a task. The caller refreshes UpdatedAt.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.AssignedToID != nil {
		t.AssignedToID = *p.AssignedToID
	}
	if p.AssignedToName != nil {
		t.AssignedToName = *p.AssignedToName
	}
	if p.AssignedToIDs != nil {
		t.AssignedToIDs = *p.AssignedToIDs
	}
	if p.AssignedToNames != nil {
		t.AssignedToNames = *p.AssignedToNames
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.Cost != nil {
		t.Cost = *p.Cost
	}
}
