package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenStore is a minimal in-memory token.Store for envelope tests.
type fakeTokenStore struct {
	mu      sync.Mutex
	records map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{records: make(map[string]*models.RefreshToken)}
}

func (s *fakeTokenStore) Create(ctx context.Context, record *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	s.records[record.ID] = &clone
	return nil
}

func (s *fakeTokenStore) FindBySecretHash(ctx context.Context, userID, secretHash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.UserID == userID && r.SecretHash == secretHash && r.RevokedAt == nil && r.ExpiresAt.After(time.Now()) {
			clone := *r
			return &clone, nil
		}
	}
	return nil, token.ErrNotFound
}

func (s *fakeTokenStore) MarkRotated(ctx context.Context, id, successorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok || r.RotatedTo != nil {
		return false, nil
	}
	r.RotatedTo = &successorID
	return true, nil
}

func (s *fakeTokenStore) RevokeByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok && r.RevokedAt == nil {
		now := time.Now()
		r.RevokedAt = &now
	}
	return nil
}

func (s *fakeTokenStore) RevokeByFamily(ctx context.Context, familyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, r := range s.records {
		if r.FamilyID == familyID && r.RevokedAt == nil {
			r.RevokedAt = &now
		}
	}
	return nil
}

func (s *fakeTokenStore) RevokeByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, r := range s.records {
		if r.UserID == userID && r.RevokedAt == nil {
			r.RevokedAt = &now
		}
	}
	return nil
}

func (s *fakeTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *fakeTokenStore) ListFamily(ctx context.Context, familyID string) ([]models.RefreshToken, error) {
	return nil, nil
}

func newTestAuthService() *AuthService {
	cfg := &config.Config{
		Environment:     "test",
		AccessSecret:    []byte("test-access-secret"),
		RefreshSecret:   []byte("test-refresh-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
	tokens := token.NewService(newFakeTokenStore(), cfg.RefreshTokenTTL)
	return NewAuthService(nil, nil, tokens, cfg)
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "10.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	userID, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userID, secret, err := svc.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NotEmpty(t, secret)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	svc := newTestAuthService()

	accessToken, err := svc.GenerateAccessToken("user-1")
	require.NoError(t, err)

	// Wrong signing key and wrong type claim; must not parse as refresh
	_, _, err = svc.ParseRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshRotatesAndDetectsReuse(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)

	next, userID, err := svc.Refresh(ctx, pair.RefreshToken, "10.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// Replaying the rotated-away envelope trips reuse detection
	_, _, err = svc.Refresh(ctx, pair.RefreshToken, "10.0.0.2", "test-agent")
	assert.ErrorIs(t, err, token.ErrReuseDetected)

	// The reuse kills the fresh envelope too
	_, _, err = svc.Refresh(ctx, next.RefreshToken, "10.0.0.1", "test-agent")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newTestAuthService()

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt", "", "")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestLogoutAllSessions(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	a, err := svc.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)
	b, err := svc.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)

	// Empty envelope revokes every session of the user
	require.NoError(t, svc.Logout(ctx, "", "user-1"))

	_, _, err = svc.Refresh(ctx, a.RefreshToken, "", "")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	_, _, err = svc.Refresh(ctx, b.RefreshToken, "", "")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestLogoutSingleSession(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	a, err := svc.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)
	b, err := svc.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, a.RefreshToken, "user-1"))

	_, _, err = svc.Refresh(ctx, a.RefreshToken, "", "")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	// The other session survives
	_, _, err = svc.Refresh(ctx, b.RefreshToken, "", "")
	assert.NoError(t, err)
}
