package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"gorm.io/gorm"
)

// RefreshTokenRepository is the Postgres-backed token.Store.
type RefreshTokenRepository struct {
	db *gorm.DB
}

var _ token.Store = (*RefreshTokenRepository)(nil)

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create persists a new refresh token record
func (r *RefreshTokenRepository) Create(ctx context.Context, record *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindBySecretHash retrieves a non-revoked, unexpired record by secret hash,
// scoped to one user. Rotated tombstones are returned for reuse detection.
func (r *RefreshTokenRepository) FindBySecretHash(ctx context.Context, userID, secretHash string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND secret_hash = ? AND revoked_at IS NULL AND expires_at > ?",
			userID, secretHash, time.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, token.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// MarkRotated sets rotated_to with a conditional update so that at most one
// concurrent rotation wins.
func (r *RefreshTokenRepository) MarkRotated(ctx context.Context, id, successorID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND rotated_to IS NULL", id).
		Update("rotated_to", successorID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RevokeByID revokes a single refresh token
func (r *RefreshTokenRepository) RevokeByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now()).Error
}

// RevokeByFamily revokes every refresh token in a family
func (r *RefreshTokenRepository) RevokeByFamily(ctx context.Context, familyID string) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", time.Now()).Error
}

// RevokeByUser revokes every refresh token owned by a user
func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// DeleteExpired deletes expired refresh tokens and returns the count removed
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// ListFamily returns all records in a family, oldest first
func (r *RefreshTokenRepository) ListFamily(ctx context.Context, familyID string) ([]models.RefreshToken, error) {
	var records []models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
