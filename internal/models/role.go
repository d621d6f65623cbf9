package models

import (
	"time"
)

// Well-known role names
const (
	RoleAdmin             = "Admin"
	RoleOrganizationOwner = "Organization Owner"
	RoleTechnician        = "Technician"
	RoleDispatcher        = "Dispatcher"
)

// Role represents an access role in the system
type Role struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null;unique;index"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// UserOrganizationRole assigns a role to a user within one organization
type UserOrganizationRole struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         string    `json:"user_id" gorm:"not null;type:uuid;uniqueIndex:idx_user_org_role,priority:1"`
	OrganizationID string    `json:"organization_id" gorm:"not null;type:uuid;uniqueIndex:idx_user_org_role,priority:2"`
	RoleID         string    `json:"role_id" gorm:"not null;type:uuid;uniqueIndex:idx_user_org_role,priority:3"`
	Status         string    `json:"status" gorm:"type:varchar(20);default:'active';index"`
	IsPrimary      bool      `json:"is_primary" gorm:"default:false"`
	// Relationships
	User         User         `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;references:ID;constraint:OnDelete:CASCADE"`
	Role         Role         `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}

// TableName specifies the table name for the UserOrganizationRole model
func (UserOrganizationRole) TableName() string {
	return "user_organization_roles"
}
