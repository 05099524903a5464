package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CompletionChecker reports whether a user's profile has finished
// onboarding.
type CompletionChecker interface {
	IsProfileComplete(ctx context.Context, userID string) (bool, error)
}

// RequireProfileComplete blocks users who have not finished onboarding
// from the main app surface, pointing them back to the wizard.
func RequireProfileComplete(checker CompletionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetUserSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		complete, err := checker.IsProfileComplete(c.Request.Context(), session.UserID)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if !complete {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "Profile setup is not finished",
				"redirect": "/onboarding",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireProfileIncomplete blocks users who already finished onboarding
// from re-entering the wizard.
func RequireProfileIncomplete(checker CompletionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetUserSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		complete, err := checker.IsProfileComplete(c.Request.Context(), session.UserID)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if complete {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Profile setup is already finished",
				"redirect": "/",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
