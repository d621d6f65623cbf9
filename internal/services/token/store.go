package token

import (
	"context"

	"github.com/sndservices/snd-crm-backend/internal/models"
)

// Store persists refresh-token records. The token service is the sole writer;
// nothing else mutates refresh_tokens. Implementations must return ErrNotFound
// from FindBySecretHash when no matching record exists.
type Store interface {
	// Create persists a new record.
	Create(ctx context.Context, record *models.RefreshToken) error

	// FindBySecretHash returns the record for the given user whose secret
	// hash matches, is not revoked and has not expired. Rotated tombstones
	// are still returned so the caller can detect reuse.
	FindBySecretHash(ctx context.Context, userID, secretHash string) (*models.RefreshToken, error)

	// MarkRotated sets rotated_to on the record, but only if it is still
	// null. Returns false when a concurrent rotation already claimed the
	// record; the caller must treat that as a reuse signal.
	MarkRotated(ctx context.Context, id, successorID string) (bool, error)

	// RevokeByID sets revoked_at on one record. Idempotent.
	RevokeByID(ctx context.Context, id string) error

	// RevokeByFamily sets revoked_at on every record in the family that is
	// not already revoked. Idempotent.
	RevokeByFamily(ctx context.Context, familyID string) error

	// RevokeByUser sets revoked_at on every record owned by the user that
	// is not already revoked. Idempotent.
	RevokeByUser(ctx context.Context, userID string) error

	// DeleteExpired removes records whose expiry has passed and reports how
	// many were removed.
	DeleteExpired(ctx context.Context) (int64, error)

	// ListFamily returns all records in a family ordered by creation time.
	ListFamily(ctx context.Context, familyID string) ([]models.RefreshToken, error)
}

// AuditSink receives security-relevant token events. Implementations must not
// block the request path for long; delivery is best effort.
type AuditSink interface {
	TokenReuseDetected(userID, familyID, ip string)
}
