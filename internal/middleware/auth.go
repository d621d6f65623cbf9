package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/services/auth"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves per-request identity. A valid access token is the
// fast path and never touches the token store; otherwise the refresh cookie
// is rotated transparently and the request continues with fresh tokens.
type AuthMiddleware struct {
	authService *auth.AuthService
	cfg         *config.Config
}

func NewAuthMiddleware(authService *auth.AuthService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, cfg: cfg}
}

// RequireAuth validates the bearer access token and sets user info in the
// context, falling back to the refresh flow when the access token is absent,
// malformed or expired.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// If user_id is already set, skip authentication
		if _, exists := c.Get("user_id"); exists {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := m.authService.VerifyAccessToken(tokenString)
			if err == nil {
				m.attachUser(c, userID)
				return
			}
			// Expired or malformed access token: fall through to the
			// refresh flow instead of failing outright.
		}

		m.handleTokenRefresh(c)
	}
}

// handleTokenRefresh rotates the refresh cookie and resumes the request.
func (m *AuthMiddleware) handleTokenRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie(config.RefreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		c.Abort()
		return
	}

	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")

	pair, userID, err := m.authService.Refresh(c.Request.Context(), refreshToken, ip, userAgent)
	if err != nil {
		m.failRefresh(c, err)
		return
	}

	SetRefreshCookie(c, pair.RefreshToken, m.cfg)
	c.Header("X-New-Access-Token", pair.AccessToken)

	m.attachUser(c, userID)
}

// failRefresh maps refresh failures to responses. Any credential-class error
// clears the cookie so the client cannot loop on a known-bad token.
func (m *AuthMiddleware) failRefresh(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrReuseDetected):
		ClearRefreshCookie(c, m.cfg)
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Security compromised - please login again",
			"code":    "TOKEN_REUSE_DETECTED",
		})
	case token.IsCredentialError(err):
		ClearRefreshCookie(c, m.cfg)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
	c.Abort()
}

// attachUser loads the principal and stores it in the request context
func (m *AuthMiddleware) attachUser(c *gin.Context, userID string) {
	user, err := m.authService.GetUserByID(userID)
	if err != nil {
		ClearRefreshCookie(c, m.cfg)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		c.Abort()
		return
	}

	c.Set("user_id", user.ID)
	c.Set("user", user)

	c.Next()
}

// SetRefreshCookie sets the HttpOnly refresh-token cookie. Secure is enabled
// in production; SameSite is always Strict and the path is restricted to the
// refresh endpoint.
func SetRefreshCookie(c *gin.Context, refreshToken string, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		config.RefreshCookieName,
		refreshToken,
		int(cfg.RefreshTokenTTL.Seconds()),
		config.RefreshCookiePath,
		"",
		cfg.IsProduction(),
		true,
	)
}

// ClearRefreshCookie expires the refresh-token cookie
func ClearRefreshCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		config.RefreshCookieName,
		"",
		-1,
		config.RefreshCookiePath,
		"",
		cfg.IsProduction(),
		true,
	)
}
