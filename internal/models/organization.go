package models

import (
	"time"
)

// Organization is the top-level tenant. Franchisees and their branches hang
// off an organization.
type Organization struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;index"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'active';index"`
	// Relationships
	Franchisees []Franchisee `json:"franchisees,omitempty" gorm:"foreignKey:OrganizationID;references:ID"`
}

// TableName specifies the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}
