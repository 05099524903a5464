package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin
// context so the observability middleware can include the reason in the
// request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondAppError maps an application error to its HTTP status.
func respondAppError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", err)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, userMessage(err), err)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, userMessage(err), err)
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "Access denied", err)
	case apperrors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, userMessage(err), err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// userMessage strips the wrapped sentinel suffix, leaving the
// human-readable reason the error helpers were given.
func userMessage(err error) string {
	msg := err.Error()
	for i := len(msg) - 1; i >= 0; i-- {
		if msg[i] == ':' {
			return msg[:i]
		}
	}
	return msg
}
