package models

import "time"

type Project struct {
	ID            string     `gorm:"primaryKey;type:char(36)" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ManagerID     *string    `gorm:"type:char(36);index" json:"manager_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	TeamMemberIDs StringList `gorm:"type:json" json:"team_member_ids,omitempty"`
	Budget        float64    `gorm:"type:decimal(15,2);default:0" json:"budget"`
	BudgetSpent   float64    `gorm:"type:decimal(15,2);default:0" json:"budget_spent"`
	IsCompleted   bool       `gorm:"default:false" json:"is_completed"`
	Tags          StringList `gorm:"type:json" json:"tags,omitempty"`

	// Tasks is the cache-side embedded task list. It is never persisted on the
	// project row; the tasks table is the source of truth.
	Tasks []Task `gorm:"-" json:"tasks"`

	OrganizationID string `gorm:"type:char(36);index;not null" json:"organization_id"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectPatch carries a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Title         *string
	Description   *string
	StartDate     **time.Time
	EndDate       **time.Time
	ManagerID     **string
	TeamMemberIDs *StringList
	Budget        *float64
	BudgetSpent   *float64
	IsCompleted   *bool
	Tags          *StringList
}

func (p ProjectPatch) Apply(pr *Project) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.StartDate != nil {
		pr.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		pr.EndDate = *p.EndDate
	}
	if p.ManagerID != nil {
		pr.ManagerID = *p.ManagerID
	}
	if p.TeamMemberIDs != nil {
		pr.TeamMemberIDs = *p.TeamMemberIDs
	}
	if p.Budget != nil {
		pr.Budget = *p.Budget
	}
	if p.BudgetSpent != nil {
		pr.BudgetSpent = *p.BudgetSpent
	}
	if p.IsCompleted != nil {
		pr.IsCompleted = *p.IsCompleted
	}
	if p.Tags != nil {
		pr.Tags = *p.Tags
	}
}
