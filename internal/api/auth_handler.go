package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/auth"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

// AuthHandler handles authentication operations
type AuthHandler struct {
	cfg *config.Config
	jwt *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg: cfg,
		jwt: auth.NewJWTService(cfg.JWTSecret),
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// setSecureCookie sets a secure HTTP-only cookie
func setSecureCookie(c *gin.Context, name, value string, maxAge int) {
	secure := c.Request.Header.Get("X-Forwarded-Proto") == "https" || c.Request.TLS != nil
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

// clearCookie clears a cookie by setting it to empty with past expiration
func clearCookie(c *gin.Context, name string) {
	secure := c.Request.Header.Get("X-Forwarded-Proto") == "https" || c.Request.TLS != nil
	c.SetCookie(name, "", -1, "/", "", secure, true)
}

// Login authenticates the configured admin account
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !auth.VerifyAdmin(h.cfg, req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.jwt.GenerateToken(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	setSecureCookie(c, "auth_token", token, int(time.Until(expiresAt).Seconds()))

	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	clearCookie(c, "auth_token")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
