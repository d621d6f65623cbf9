package models

import (
	"time"
)

// Job statuses
const (
	JobStatusPending             = "PENDING"
	JobStatusSubmitted           = "SUBMITTED"
	JobStatusInProgress          = "IN_PROGRESS"
	JobStatusDone                = "DONE"
	JobStatusDonePendingApproval = "DONE_PENDING_APPROVAL"
	JobStatusCancelled           = "CANCELLED"
)

// Job represents a unit of work scheduled for a client. JobNumber is a
// global auto-incremented human-facing identifier.
type Job struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	JobNumber   int        `json:"job_number" gorm:"not null;unique;index"`
	ClientID    string     `json:"client_id" gorm:"not null;index;type:uuid"`
	BranchID    string     `json:"branch_id" gorm:"not null;index;type:uuid"`
	TechID      string     `json:"tech_id" gorm:"not null;index;type:uuid"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(30);default:'PENDING';index"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	// Relationships
	Client   Client    `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID"`
	Branch   Branch    `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
	Tech     User      `json:"tech,omitempty" gorm:"foreignKey:TechID;references:ID"`
	Items    []JobItem `json:"items,omitempty" gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// JobItem is a billable line item on a job
type JobItem struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	JobID   string  `json:"job_id" gorm:"not null;index;type:uuid"`
	Item    string  `json:"item" gorm:"type:varchar(255);not null"`
	Qty     int     `json:"qty" gorm:"not null;default:1"`
	Price   float64 `json:"price" gorm:"not null"`
	Cost    float64 `json:"cost" gorm:"not null"`
	Amount  float64 `json:"amount" gorm:"not null"`
	Taxable bool    `json:"taxable" gorm:"default:false"`
}

// TableName specifies the table name for the JobItem model
func (JobItem) TableName() string {
	return "job_items"
}

// Payment records money collected against a job
type Payment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	JobID       string    `json:"job_id" gorm:"not null;index;type:uuid"`
	Amount      float64   `json:"amount" gorm:"not null"`
	PaymentType string    `json:"payment_type" gorm:"type:varchar(30);not null"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
