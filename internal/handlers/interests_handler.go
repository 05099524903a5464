package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
)

// InterestsHandler serves the selectable interests catalog
type InterestsHandler struct {
	service services.InterestsServiceInterface
}

// NewInterestsHandler creates a new InterestsHandler
func NewInterestsHandler(service services.InterestsServiceInterface) *InterestsHandler {
	return &InterestsHandler{
		service: service,
	}
}

// GetCatalog handles GET /api/v1/interests
func (h *InterestsHandler) GetCatalog(c *gin.Context) {
	interests, err := h.service.GetCatalog(c.Request.Context())
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InterestsResponse{Interests: interests})
}
