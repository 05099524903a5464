package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	interestsCacheReady func() bool
}

func NewHealthHandler(interestsCacheReady func() bool) *HealthHandler {
	return &HealthHandler{
		interestsCacheReady: interestsCacheReady,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if !h.interestsCacheReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "interests cache not initialized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
