package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/middleware"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
)

// ProfileHandler serves completed public profiles
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// GetBySlug handles GET /api/v1/profiles/:slug
func (h *ProfileHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		respondError(c, http.StatusBadRequest, "Missing profile slug", nil)
		return
	}

	profile, err := h.service.GetPublicProfile(c.Request.Context(), slug)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetOwn handles GET /api/v1/me/profile
// Returns the caller's own completed profile. The route sits behind
// the completion guard, so an unfinished profile never reaches here.
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profile, err := h.service.GetOwnProfile(c.Request.Context(), session.UserID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
