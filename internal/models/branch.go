package models

import (
	"time"
)

// Branch statuses
const (
	BranchStatusActive   = "active"
	BranchStatusInactive = "inactive"
	BranchStatusClosed   = "closed"
)

// Branch represents a physical location operated by a franchisee
type Branch struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	FranchiseeID string    `json:"franchisee_id" gorm:"not null;index;type:uuid"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Code         string    `json:"code" gorm:"type:varchar(20);not null;unique;index"`
	Type         string    `json:"type" gorm:"type:varchar(10);default:'sub'"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Phone        string    `json:"phone" gorm:"type:varchar(20)"`
	Email        string    `json:"email" gorm:"type:varchar(255)"`
	// Relationships
	Franchisee Franchisee `json:"franchisee,omitempty" gorm:"foreignKey:FranchiseeID;references:ID"`
}

// TableName specifies the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
