package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services/auth"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fakeStore is an in-memory token.Store that counts lookups so tests can
// assert the access-token fast path never touches it.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*models.RefreshToken
	lookups int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.RefreshToken)}
}

func (s *fakeStore) Create(ctx context.Context, record *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	s.records[record.ID] = &clone
	return nil
}

func (s *fakeStore) FindBySecretHash(ctx context.Context, userID, secretHash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	for _, r := range s.records {
		if r.UserID == userID && r.SecretHash == secretHash && r.RevokedAt == nil && r.ExpiresAt.After(time.Now()) {
			clone := *r
			return &clone, nil
		}
	}
	return nil, token.ErrNotFound
}

func (s *fakeStore) MarkRotated(ctx context.Context, id, successorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok || r.RotatedTo != nil {
		return false, nil
	}
	r.RotatedTo = &successorID
	return true, nil
}

func (s *fakeStore) RevokeByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok && r.RevokedAt == nil {
		now := time.Now()
		r.RevokedAt = &now
	}
	return nil
}

func (s *fakeStore) RevokeByFamily(ctx context.Context, familyID string) error {
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

func (s *fakeStore) RevokeByUser(ctx context.Context, userID string) error {
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

func (s *fakeStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *fakeStore) ListFamily(ctx context.Context, familyID string) ([]models.RefreshToken, error) {
	return nil, nil
}

func (s *fakeStore) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

type testEnv struct {
	router      *gin.Engine
	authService *auth.AuthService
	store       *fakeStore
	mock        sqlmock.Sqlmock
	cfg         *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:     "test",
		AccessSecret:    []byte("test-access-secret"),
		RefreshSecret:   []byte("test-refresh-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}

	store := newFakeStore()
	tokens := token.NewService(store, cfg.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(gdb)
	authService := auth.NewAuthService(userRepo, nil, tokens, cfg)

	m := NewAuthMiddleware(authService, cfg)

	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	return &testEnv{
		router:      r,
		authService: authService,
		store:       store,
		mock:        mock,
		cfg:         cfg,
	}
}

// expectUserLoad queues the user row returned by attachUser's lookup.
func (e *testEnv) expectUserLoad(userID string) {
	rows := sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "first_name", "last_name", "is_active"}).
		AddRow(userID, "user@example.com", "user", "hash", "Test", "User", true)
	e.mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs(userID, 1).
		WillReturnRows(rows)
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestBearerFastPath(t *testing.T) {
	env := newTestEnv(t)

	accessToken, err := env.authService.GenerateAccessToken("user-1")
	require.NoError(t, err)

	env.expectUserLoad("user-1")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	// A valid access token must never hit the token store
	assert.Equal(t, 0, env.store.lookupCount())
	assert.Empty(t, w.Header().Get("X-New-Access-Token"))
}

func TestMissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestTransparentRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pair, err := env.authService.GenerateTokenPair(ctx, "user-1", "10.0.0.1", "test-agent")
	require.NoError(t, err)

	env.expectUserLoad("user-1")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: config.RefreshCookieName, Value: pair.RefreshToken})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	// The request continued with a freshly minted pair
	newAccess := w.Header().Get("X-New-Access-Token")
	require.NotEmpty(t, newAccess)
	userID, err := env.authService.VerifyAccessToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	cookie := findCookie(t, w.Result(), config.RefreshCookieName)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.NotEqual(t, pair.RefreshToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, config.RefreshCookiePath, cookie.Path)
}

func TestReuseDetectedClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pair, err := env.authService.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)

	// Rotate once so the original envelope becomes a tombstone
	_, _, err = env.authService.Refresh(ctx, pair.RefreshToken, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: config.RefreshCookieName, Value: pair.RefreshToken})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REUSE_DETECTED")

	cookie := findCookie(t, w.Result(), config.RefreshCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestGarbageCookie(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: config.RefreshCookieName, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token")

	cookie := findCookie(t, w.Result(), config.RefreshCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestExpiredAccessTokenFallsBackToRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pair, err := env.authService.GenerateTokenPair(ctx, "user-1", "", "")
	require.NoError(t, err)

	env.expectUserLoad("user-1")

	// Malformed bearer token plus a valid cookie: the refresh flow wins
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	req.AddCookie(&http.Cookie{Name: config.RefreshCookieName, Value: pair.RefreshToken})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-New-Access-Token"))
}
