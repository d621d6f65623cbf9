package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown users and wrong
	// passwords alike; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when the email or username is taken.
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrAccountDisabled is returned for deactivated accounts.
	ErrAccountDisabled = errors.New("account is deactivated")
)

// AuthService owns credential verification and token issuance. Refresh-token
// state lives in the token service; this layer wraps the opaque secrets into
// signed JWT envelopes for transport.
type AuthService struct {
	userRepo *repository.UserRepository
	roleRepo *repository.RoleRepository
	tokens   *token.Service
	cfg      *config.Config
}

// TokenPair is an access token plus a refresh-token envelope ready for
// transmission.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewAuthService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository, tokens *token.Service, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		tokens:   tokens,
		cfg:      cfg,
	}
}

// Register creates a new user, grants them the Admin role in the given
// organization, and logs them in.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest, ip, userAgent string) (*models.User, *TokenPair, error) {
	exists, err := s.userRepo.CheckEmailOrUsernameExists(req.Email, req.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	adminRole, err := s.roleRepo.GetByName(models.RoleAdmin)
	if err != nil {
		return nil, nil, fmt.Errorf("admin role not found, run system initialization: %w", err)
	}
	assignment := &models.UserOrganizationRole{
		UserID:         user.ID,
		OrganizationID: req.OrganizationID,
		RoleID:         adminRole.ID,
		Status:         "active",
		IsPrimary:      true,
	}
	if err := s.roleRepo.AssignToUser(assignment); err != nil {
		return nil, nil, fmt.Errorf("failed to assign role: %w", err)
	}

	pair, err := s.GenerateTokenPair(ctx, user.ID, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, ip, userAgent string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logrus.Warnf("Failed to update last login for user %s: %v", user.ID, err)
	}

	pair, err := s.GenerateTokenPair(ctx, user.ID, ip, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the refresh token presented in the envelope. With an empty
// envelope every refresh token of the user is revoked instead.
func (s *AuthService) Logout(ctx context.Context, refreshToken, userID string) error {
	if refreshToken == "" {
		return s.tokens.RevokeAllForUser(ctx, userID)
	}

	tokenUserID, secret, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		// An undecodable envelope is already unusable; nothing to revoke.
		logrus.Warnf("Could not parse refresh token on logout: %v", err)
		return nil
	}
	record, err := s.tokens.Validate(ctx, secret, tokenUserID)
	if err != nil {
		// Reuse detection inside Validate already revoked the family.
		if token.IsCredentialError(err) {
			return nil
		}
		return err
	}
	return s.tokens.Revoke(ctx, record.ID)
}

// Refresh rotates the presented refresh token and returns a fresh pair along
// with the authenticated user ID recovered from the envelope.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, ip, userAgent string) (*TokenPair, string, error) {
	userID, secret, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", token.ErrInvalidToken
	}

	issued, err := s.tokens.Rotate(ctx, secret, userID, ip, userAgent)
	if err != nil {
		return nil, "", err
	}

	pair, err := s.buildPair(userID, issued)
	if err != nil {
		return nil, "", err
	}
	return pair, userID, nil
}

// GenerateTokenPair mints an access token and a fresh refresh token in a new
// family (login semantics).
func (s *AuthService) GenerateTokenPair(ctx context.Context, userID, ip, userAgent string) (*TokenPair, error) {
	issued, err := s.tokens.Issue(ctx, userID, "", ip, userAgent)
	if err != nil {
		return nil, err
	}
	return s.buildPair(userID, issued)
}

func (s *AuthService) buildPair(userID string, issued *token.Issued) (*TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.wrapRefreshSecret(userID, issued)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// GenerateAccessToken mints a short-lived stateless access token
func (s *AuthService) GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := &models.AccessClaims{
		UserID:    userID,
		TokenType: models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.cfg.AccessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// wrapRefreshSecret signs the opaque secret into the refresh JWT envelope.
// The envelope expiry mirrors the stored record's expiry.
func (s *AuthService) wrapRefreshSecret(userID string, issued *token.Issued) (string, error) {
	claims := &models.RefreshClaims{
		UserID:    userID,
		TokenType: models.TokenTypeRefresh,
		Secret:    issued.Secret,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Record.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.cfg.RefreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken validates an access token and returns the user ID. Only
// signature and expiry are checked; no store access.
func (s *AuthService) VerifyAccessToken(tokenString string) (string, error) {
	claims := &models.AccessClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.AccessSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid access token: %w", err)
	}
	if !t.Valid || claims.TokenType != models.TokenTypeAccess {
		return "", errors.New("invalid access token claims")
	}
	return claims.UserID, nil
}

// ParseRefreshToken verifies the refresh envelope's signature and type and
// extracts the user ID and opaque secret. This is the cheap rejection of
// garbage input before any store lookup.
func (s *AuthService) ParseRefreshToken(tokenString string) (string, string, error) {
	claims := &models.RefreshClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.RefreshSecret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if !t.Valid || claims.TokenType != models.TokenTypeRefresh || claims.Secret == "" {
		return "", "", errors.New("invalid refresh token claims")
	}
	return claims.UserID, claims.Secret, nil
}

// GetUserByID loads a user, for attaching to the request context
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// AccessTokenTTL exposes the configured access token lifetime
func (s *AuthService) AccessTokenTTL() time.Duration {
	return s.cfg.AccessTokenTTL
}

// RefreshTokenTTL exposes the configured refresh token lifetime
func (s *AuthService) RefreshTokenTTL() time.Duration {
	return s.cfg.RefreshTokenTTL
}
