package models

import (
	"time"
)

// RefreshToken is a persisted refresh-token record. The raw secret handed to
// the client is never stored; only its SHA-256 hash is. All records descended
// from one login share a FamilyID and form a linear chain via RotatedTo.
type RefreshToken struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FamilyID   string     `json:"family_id" gorm:"not null;type:uuid;index:idx_refresh_tokens_family_revoked,priority:1"`
	UserID     string     `json:"user_id" gorm:"not null;index;type:uuid"`
	SecretHash string     `json:"-" gorm:"type:varchar(64);not null;unique;index"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null;index"`
	RotatedTo  *string    `json:"rotated_to,omitempty" gorm:"type:uuid"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty" gorm:"index:idx_refresh_tokens_family_revoked,priority:2"`
	UserAgent  string     `json:"user_agent,omitempty" gorm:"type:varchar(500)"`
	IPAddress  string     `json:"ip_address,omitempty" gorm:"type:varchar(45)"`
	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Usable reports whether the record may still be exchanged: not revoked, not
// expired, and not already rotated away.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && t.RotatedTo == nil && t.ExpiresAt.After(now)
}
