package token

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is a mutex-guarded in-memory Store with the same conditional
// update semantics as the database-backed implementation.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]*models.RefreshToken
	now     func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		records: make(map[string]*models.RefreshToken),
		now:     time.Now,
	}
}

func (s *memoryStore) Create(ctx context.Context, record *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	s.records[record.ID] = &clone
	return nil
}

func (s *memoryStore) FindBySecretHash(ctx context.Context, userID, secretHash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.UserID != userID || r.SecretHash != secretHash {
			continue
		}
		if r.RevokedAt != nil || !r.ExpiresAt.After(s.now()) {
			continue
		}
		clone := *r
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (s *memoryStore) MarkRotated(ctx context.Context, id, successorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok || r.RotatedTo != nil {
		return false, nil
	}
	r.RotatedTo = &successorID
	return true, nil
}

func (s *memoryStore) RevokeByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[id]; ok && r.RevokedAt == nil {
		now := s.now()
		r.RevokedAt = &now
	}
	return nil
}

func (s *memoryStore) RevokeByFamily(ctx context.Context, familyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, r := range s.records {
		if r.FamilyID == familyID && r.RevokedAt == nil {
			r.RevokedAt = &now
		}
	}
	return nil
}

func (s *memoryStore) RevokeByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, r := range s.records {
		if r.UserID == userID && r.RevokedAt == nil {
			r.RevokedAt = &now
		}
	}
	return nil
}

func (s *memoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, r := range s.records {
		if !r.ExpiresAt.After(s.now()) {
			delete(s.records, id)
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) ListFamily(ctx context.Context, familyID string) ([]models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RefreshToken
	for _, r := range s.records {
		if r.FamilyID == familyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSink) TokenReuseDetected(userID, familyID, ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, familyID)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newTestService(opts ...Option) (*Service, *memoryStore) {
	store := newMemoryStore()
	return NewService(store, 30*24*time.Hour, opts...), store
}

func TestIssueAndValidate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "10.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, issued.Secret)
	assert.NotEmpty(t, issued.Record.FamilyID)
	assert.NotEqual(t, issued.Secret, issued.Record.SecretHash)

	record, err := svc.Validate(ctx, issued.Secret, "user-1")
	require.NoError(t, err)
	assert.Equal(t, issued.Record.ID, record.ID)
}

func TestValidateUnknownSecret(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Validate(context.Background(), "no-such-secret", "user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	_, err = svc.Validate(ctx, issued.Secret, "user-2")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRotateChain(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)
	familyID := issued.Record.FamilyID

	secret := issued.Secret
	for i := 0; i < 5; i++ {
		next, err := svc.Rotate(ctx, secret, "user-1", "10.0.0.1", "test-agent")
		require.NoError(t, err)
		assert.Equal(t, familyID, next.Record.FamilyID)
		assert.NotEqual(t, secret, next.Secret)
		secret = next.Secret
	}

	// Only the newest link is still usable
	record, err := svc.Validate(ctx, secret, "user-1")
	require.NoError(t, err)
	assert.Nil(t, record.RotatedTo)

	// The family forms a singly linked chain with exactly one open end
	records, err := store.ListFamily(ctx, familyID)
	require.NoError(t, err)
	require.Len(t, records, 6)

	successors := make(map[string]bool)
	open := 0
	for _, r := range records {
		if r.RotatedTo == nil {
			open++
			continue
		}
		assert.False(t, successors[*r.RotatedTo], "record %s has two predecessors", *r.RotatedTo)
		successors[*r.RotatedTo] = true
	}
	assert.Equal(t, 1, open)
}

func TestRotatedTokenReuseRevokesFamily(t *testing.T) {
	sink := &recordingSink{}
	svc, store := newTestService(WithAuditSink(sink))
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	next, err := svc.Rotate(ctx, issued.Secret, "user-1", "", "")
	require.NoError(t, err)

	// Presenting the rotated-away token is reuse
	_, err = svc.Rotate(ctx, issued.Secret, "user-1", "10.0.0.2", "")
	assert.ErrorIs(t, err, ErrReuseDetected)
	assert.Equal(t, 1, sink.count())

	// The whole family is dead, including the latest link
	_, err = svc.Validate(ctx, next.Secret, "user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)

	records, err := store.ListFamily(ctx, issued.Record.FamilyID)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.NotNil(t, r.RevokedAt)
	}
}

func TestReuseViaValidate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	_, err = svc.Rotate(ctx, issued.Secret, "user-1", "", "")
	require.NoError(t, err)

	_, err = svc.Validate(ctx, issued.Secret, "user-1")
	assert.ErrorIs(t, err, ErrReuseDetected)
}

func TestExpiredTokenInvalid(t *testing.T) {
	current := time.Now()
	clock := func() time.Time { return current }

	store := newMemoryStore()
	store.now = clock
	svc := NewService(store, time.Hour, WithClock(clock))
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	_, err = svc.Validate(ctx, issued.Secret, "user-1")
	require.NoError(t, err)

	// Past expiry the token is indistinguishable from an unknown one
	current = current.Add(2 * time.Hour)
	_, err = svc.Validate(ctx, issued.Secret, "user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeAllForUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)
	b, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)
	other, err := svc.Issue(ctx, "user-2", "", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllForUser(ctx, "user-1"))

	_, err = svc.Validate(ctx, a.Secret, "user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Validate(ctx, b.Secret, "user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Other users are untouched
	_, err = svc.Validate(ctx, other.Secret, "user-2")
	assert.NoError(t, err)
}

func TestRevokeIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, issued.Record.ID))
	require.NoError(t, svc.Revoke(ctx, issued.Record.ID))

	_, err = svc.Validate(ctx, issued.Secret, "user-1")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCleanupExpired(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Minute)
	ctx := context.Background()

	fresh, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	// Plant an already-expired record directly
	expired := &models.RefreshToken{
		ID:         "expired-1",
		FamilyID:   "family-x",
		UserID:     "user-1",
		SecretHash: HashSecret("old-secret"),
		ExpiresAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, store.Create(ctx, expired))

	count, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Cleanup is idempotent
	count, err = svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.Validate(ctx, fresh.Secret, "user-1")
	assert.NoError(t, err)
}

func TestConcurrentRotationSingleWinner(t *testing.T) {
	sink := &recordingSink{}
	svc, _ := newTestService(WithAuditSink(sink))
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "user-1", "", "", "")
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)

	results := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Rotate(ctx, issued.Secret, "user-1", "10.0.0.1", "test-agent")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	success := 0
	reuse := 0
	invalid := 0
	for err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrReuseDetected):
			reuse++
		case errors.Is(err, ErrInvalidToken):
			invalid++
		default:
			t.Fatalf("unexpected rotation error: %v", err)
		}
	}

	// At most one rotation may win; once any loser detects the race the
	// family is revoked, so late goroutines may see an invalid token
	// instead of a reuse signal.
	assert.LessOrEqual(t, success, 1)
	assert.Equal(t, n, success+reuse+invalid)
	assert.Greater(t, reuse, 0)
}
