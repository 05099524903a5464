package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/middleware"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
)

// OnboardingHandler handles the profile setup wizard endpoints
type OnboardingHandler struct {
	onboarding services.OnboardingServiceInterface
	photos     services.PhotoServiceInterface
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboardingSvc services.OnboardingServiceInterface, photoSvc services.PhotoServiceInterface) *OnboardingHandler {
	return &OnboardingHandler{
		onboarding: onboardingSvc,
		photos:     photoSvc,
	}
}

// GetState handles GET /api/v1/onboarding
// Returns the wizard state without transitioning.
func (h *OnboardingHandler) GetState(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	state, err := h.onboarding.GetState(c.Request.Context(), session.UserID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// UpdateDraft handles PATCH /api/v1/onboarding/draft
// Merges a partial edit into the draft. Nothing is validated here;
// validation happens when the user tries to advance.
func (h *OnboardingHandler) UpdateDraft(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	state, err := h.onboarding.UpdateDraft(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Next handles POST /api/v1/onboarding/next
// Validates the current step and advances; on the last step a
// successful validation submits the profile.
func (h *OnboardingHandler) Next(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	state, err := h.onboarding.Next(c.Request.Context(), session.UserID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if len(state.FieldErrors) > 0 {
		// Validation failures are part of the wizard flow, but 422
		// lets clients distinguish them without inspecting the body
		c.JSON(http.StatusUnprocessableEntity, state)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Previous handles POST /api/v1/onboarding/previous
func (h *OnboardingHandler) Previous(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	state, err := h.onboarding.Previous(c.Request.Context(), session.UserID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// UploadPhotos handles POST /api/v1/onboarding/photos
// Accepts a multipart form with one or more files under "photos".
func (h *OnboardingHandler) UploadPhotos(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	fileHeaders := form.File["photos"]
	if len(fileHeaders) == 0 {
		respondError(c, http.StatusBadRequest, "No files in upload batch", nil)
		return
	}

	files := make([]services.PhotoFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read uploaded file", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read uploaded file", err)
			return
		}
		files = append(files, services.PhotoFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	resp, err := h.photos.UploadBatch(c.Request.Context(), session.UserID, files)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemovePhoto handles DELETE /api/v1/onboarding/photos/:index
func (h *OnboardingHandler) RemovePhoto(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid photo index", err)
		return
	}

	photos, err := h.photos.Remove(c.Request.Context(), session.UserID, index)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "photos": photos})
}
