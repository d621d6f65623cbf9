package models

import (
	"time"
)

// Client represents a CRM customer record. ClientNumber auto-increments per
// branch; the (client_number, branch_id) pair is unique.
type Client struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ClientNumber int       `json:"client_number" gorm:"not null;uniqueIndex:idx_clients_number_branch,priority:1"`
	BranchID     string    `json:"branch_id" gorm:"not null;type:uuid;uniqueIndex:idx_clients_number_branch,priority:2;index"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(100)"`
	Email        string    `json:"email" gorm:"type:varchar(255)"`
	Phone        string    `json:"phone" gorm:"type:varchar(20);not null;unique;index"`
	AltPhone     string    `json:"alt_phone,omitempty" gorm:"type:varchar(20)"`
	CompanyName  string    `json:"company_name,omitempty" gorm:"type:varchar(255)"`
	AdSource     string    `json:"ad_source,omitempty" gorm:"type:varchar(100)"`
	AllowBilling bool      `json:"allow_billing" gorm:"default:false"`
	TaxExempt    bool      `json:"tax_exempt" gorm:"default:false"`
	// Relationships
	Branch Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
	Jobs   []Job  `json:"jobs,omitempty" gorm:"foreignKey:ClientID;references:ID"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
