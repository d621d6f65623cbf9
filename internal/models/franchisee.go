package models

import (
	"time"
)

// Franchisee represents a franchise operator within an organization
type Franchisee struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	OrganizationID string    `json:"organization_id" gorm:"not null;index;type:uuid"`
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	Email          string    `json:"email" gorm:"type:varchar(255)"`
	Phone          string    `json:"phone" gorm:"type:varchar(20)"`
	Status         string    `json:"status" gorm:"type:varchar(20);default:'active';index"`
	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;references:ID"`
	Branches     []Branch     `json:"branches,omitempty" gorm:"foreignKey:FranchiseeID;references:ID"`
}

// TableName specifies the table name for the Franchisee model
func (Franchisee) TableName() string {
	return "franchisees"
}
