package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service is the sole authority over refresh-token issuance, rotation,
// validation and revocation. It is stateless: everything lives in the
// injected Store.
type Service struct {
	store      Store
	refreshTTL time.Duration
	audit      AuditSink
	now        func() time.Time
}

// Issued is the result of issuing or rotating a refresh token. Secret is the
// raw value for transmission to the client; it is not recoverable from the
// stored record.
type Issued struct {
	Secret string
	Record *models.RefreshToken
}

// Option configures a Service.
type Option func(*Service)

// WithAuditSink attaches a sink for security events.
func WithAuditSink(sink AuditSink) Option {
	return func(s *Service) { s.audit = sink }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service over the given store.
func NewService(store Store, refreshTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		store:      store,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashSecret returns the hex-encoded SHA-256 of a raw secret. The secret is
// high-entropy random data, not a password, so an unsalted fast hash is
// sufficient; the invariant is that the raw secret is never stored.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// newSecret generates an opaque refresh secret with 256 bits of entropy.
func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates a new refresh token for the user. An empty familyID mints a
// new family (fresh login); otherwise the record is appended to the given
// family (rotation).
func (s *Service) Issue(ctx context.Context, userID, familyID, ip, userAgent string) (*Issued, error) {
	secret, err := newSecret()
	if err != nil {
		return nil, err
	}

	if familyID == "" {
		familyID = uuid.NewString()
	}

	record := &models.RefreshToken{
		ID:         uuid.NewString(),
		FamilyID:   familyID,
		UserID:     userID,
		SecretHash: HashSecret(secret),
		ExpiresAt:  s.now().Add(s.refreshTTL),
		IPAddress:  ip,
		UserAgent:  userAgent,
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &Issued{Secret: secret, Record: record}, nil
}

// Rotate exchanges a valid refresh token for a new one in the same family.
// Presenting a token that was already rotated away is treated as reuse: the
// entire family is revoked and ErrReuseDetected is returned. The same applies
// to the loser of two concurrent rotations of one token, since from its point
// of view the token stopped being exchangeable mid-flight.
func (s *Service) Rotate(ctx context.Context, oldSecret, userID, ip, userAgent string) (*Issued, error) {
	record, err := s.lookup(ctx, oldSecret, userID, ip)
	if err != nil {
		return nil, err
	}

	issued, err := s.Issue(ctx, userID, record.FamilyID, ip, userAgent)
	if err != nil {
		return nil, err
	}

	won, err := s.store.MarkRotated(ctx, record.ID, issued.Record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark token rotated: %w", err)
	}
	if !won {
		// Lost a rotation race. The family revocation below also covers
		// the record issued a moment ago.
		return nil, s.failFamily(ctx, record, ip)
	}

	return issued, nil
}

// Validate checks a refresh token without rotating it. Reuse detection
// applies exactly as in Rotate.
func (s *Service) Validate(ctx context.Context, secret, userID string) (*models.RefreshToken, error) {
	return s.lookup(ctx, secret, userID, "")
}

// lookup finds a live record by secret hash and fails the whole family when
// the record is a rotated tombstone.
func (s *Service) lookup(ctx context.Context, secret, userID, ip string) (*models.RefreshToken, error) {
	record, err := s.store.FindBySecretHash(ctx, userID, HashSecret(secret))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh token lookup failed: %w", err)
	}

	if record.RotatedTo != nil {
		return nil, s.failFamily(ctx, record, ip)
	}

	return record, nil
}

// failFamily revokes every token in the record's family and reports the
// incident. Always returns ErrReuseDetected.
func (s *Service) failFamily(ctx context.Context, record *models.RefreshToken, ip string) error {
	if err := s.store.RevokeByFamily(ctx, record.FamilyID); err != nil {
		logrus.Errorf("Failed to revoke token family %s after reuse: %v", record.FamilyID, err)
		return fmt.Errorf("failed to revoke token family: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   record.UserID,
		"family_id": record.FamilyID,
		"ip":        ip,
	}).Error("Refresh token reuse detected, family revoked")

	if s.audit != nil {
		s.audit.TokenReuseDetected(record.UserID, record.FamilyID, ip)
	}

	return ErrReuseDetected
}

// Revoke marks a single record unusable. Idempotent.
func (s *Service) Revoke(ctx context.Context, recordID string) error {
	return s.store.RevokeByID(ctx, recordID)
}

// RevokeFamily marks every record in a family unusable. Idempotent.
func (s *Service) RevokeFamily(ctx context.Context, familyID string) error {
	return s.store.RevokeByFamily(ctx, familyID)
}

// RevokeAllForUser marks every record owned by the user unusable, across all
// families. Idempotent.
func (s *Service) RevokeAllForUser(ctx context.Context, userID string) error {
	return s.store.RevokeByUser(ctx, userID)
}

// CleanupExpired deletes records whose expiry has passed. Safe to run on a
// schedule.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx)
}
