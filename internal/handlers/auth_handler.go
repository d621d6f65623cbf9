package handlers

import (
	"errors"
	"net/http"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/middleware"
	"github.com/sndservices/snd-crm-backend/internal/models"
	"github.com/sndservices/snd-crm-backend/internal/services"
	"github.com/sndservices/snd-crm-backend/internal/services/auth"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *auth.AuthService
	cfg         *config.Config
	events      *services.EventService
}

func NewAuthHandler(authService *auth.AuthService, cfg *config.Config, events *services.EventService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		events:      events,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user account and log them in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	user, pair, err := h.authService.Register(c.Request.Context(), &req, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	middleware.SetRefreshCookie(c, pair.RefreshToken, h.cfg)
	c.JSON(http.StatusCreated, models.AuthResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.authService.AccessTokenTTL().Seconds()),
		User:        user,
	})
}

// Login godoc
// @Summary Login user
// @Description Authenticate user with email and password. The refresh token is
// @Description delivered as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request (email and password)"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	user, pair, err := h.authService.Login(c.Request.Context(), &req, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccountDisabled) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login", "details": err.Error()})
		return
	}

	middleware.SetRefreshCookie(c, pair.RefreshToken, h.cfg)
	c.JSON(http.StatusOK, models.AuthResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.authService.AccessTokenTTL().Seconds()),
		User:        user,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotate the refresh token and mint a new access token. The
// @Description refresh token is taken from the HttpOnly cookie, or from the
// @Description request body for non-browser clients.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest false "Refresh token request"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(config.RefreshCookieName)
	if refreshToken == "" {
		var req models.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	pair, userID, err := h.authService.Refresh(c.Request.Context(), refreshToken, ipAddress, userAgent)
	if err != nil {
		h.failRefresh(c, err)
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	middleware.SetRefreshCookie(c, pair.RefreshToken, h.cfg)
	c.JSON(http.StatusOK, models.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.authService.AccessTokenTTL().Seconds()),
		User:         user,
	})
}

func (h *AuthHandler) failRefresh(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrReuseDetected):
		middleware.ClearRefreshCookie(c, h.cfg)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Security compromised - please login again",
			"code":  "TOKEN_REUSE_DETECTED",
		})
	case token.IsCredentialError(err):
		middleware.ClearRefreshCookie(c, h.cfg)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
	}
}

// Logout godoc
// @Summary Logout user
// @Description Revoke the presented refresh token, or every session of the
// @Description user when no token is presented
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RefreshRequest false "Logout request"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	refreshToken, _ := c.Cookie(config.RefreshCookieName)
	if refreshToken == "" {
		var req models.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if err := h.authService.Logout(c.Request.Context(), refreshToken, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout", "details": err.Error()})
		return
	}

	if refreshToken == "" && h.events != nil {
		h.events.SessionsRevoked(userID, "logout_all")
	}

	middleware.ClearRefreshCookie(c, h.cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me godoc
// @Summary Get current user
// @Description Get current authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	c.JSON(http.StatusOK, user)
}
