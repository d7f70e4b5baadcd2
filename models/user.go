package models

import "time"

// Role hierarchy: superadmin > admin > manager > user.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleUser       = "user"
)

var roleRank = map[string]int{
	RoleSuperadmin: 4,
	RoleAdmin:      3,
	RoleManager:    2,
	RoleUser:       1,
}

// RoleRank returns the numeric rank of a role, 0 for unknown roles.
func RoleRank(role string) int {
	return roleRank[role]
}

// RoleOutranks reports whether role a is strictly above role b.
func RoleOutranks(a, b string) bool {
	return RoleRank(a) > RoleRank(b)
}

type User struct {
	ID             string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Role           string    `gorm:"type:enum('superadmin','admin','manager','user');default:'user'" json:"role"`
	OrganizationID string    `gorm:"type:char(36);index;not null" json:"organization_id"`
	Timezone       *string   `gorm:"size:64" json:"timezone,omitempty"`
	AvatarURL      *string   `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
