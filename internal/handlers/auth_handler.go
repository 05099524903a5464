package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/middleware"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// SignUp handles POST /api/v1/auth/signup
// Creates an account and starts a session.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		attachError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	session, token, err := h.service.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondAppError(c, err)
		return
	}

	middleware.SetSessionCookie(
		c,
		token,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		Session: session,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		attachError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	session, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondAppError(c, err)
		return
	}

	middleware.SetSessionCookie(
		c,
		token,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Session: session,
	})
}

// Logout handles POST /api/v1/auth/logout
// Clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LogoutResponse{
		Success: true,
	})
}

// GetSession handles GET /api/v1/auth/session
// Returns the current session plus the profile completion flag, which
// the client uses to route between the wizard and the main app.
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		c.JSON(http.StatusOK, models.SessionResponse{Authenticated: false})
		return
	}

	complete, err := h.service.IsProfileComplete(c.Request.Context(), session.UserID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		Authenticated:   true,
		Session:         session,
		ProfileComplete: complete,
	})
}
