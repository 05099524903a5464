package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// PhotoFile is one uploaded file as received by the handler.
type PhotoFile struct {
	Name        string
	ContentType string
	Data        []byte
}

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoService validates and stores photo batches for the onboarding
// wizard.
type PhotoService struct {
	onboarding OnboardingServiceInterface
	storage    ObjectStorage
	config     *config.Config
}

// NewPhotoService creates a new photo service
func NewPhotoService(onboardingSvc OnboardingServiceInterface, storage ObjectStorage, cfg *config.Config) *PhotoService {
	return &PhotoService{
		onboarding: onboardingSvc,
		storage:    storage,
		config:     cfg,
	}
}

// UploadBatch stores a batch of photos. A batch that would push the
// draft past the photo cap is rejected whole, before anything is
// uploaded. Within an accepted batch each file is validated and
// uploaded independently and one bad file does not sink the others.
// Accepted photos are appended to the draft in batch order in a
// single atomic step.
func (s *PhotoService) UploadBatch(ctx context.Context, userID string, files []PhotoFile) (*models.PhotoUploadResponse, error) {
	w, err := s.onboarding.Wizard(ctx, userID)
	if err != nil {
		return nil, err
	}

	maxPhotos := s.config.Onboarding.MaxPhotos
	if len(files) == 0 {
		return nil, apperrors.InvalidInputError("no files in upload batch")
	}
	if w.PhotoCount()+len(files) > maxPhotos {
		metrics.PhotoUploads.WithLabelValues("rejected").Inc()
		return &models.PhotoUploadResponse{
			Success: false,
			Error:   fmt.Sprintf("You can only upload a maximum of %d photos", maxPhotos),
			Photos:  w.Snapshot().Draft.Photos,
		}, nil
	}

	tasks := make([]models.UploadTask, len(files))
	maxBytes := s.config.Onboarding.MaxPhotoSizeMB * 1024 * 1024

	var wg sync.WaitGroup
	for i, file := range files {
		tasks[i] = models.UploadTask{FileName: file.Name}
		if msg := validatePhotoFile(file, maxBytes, s.config.Onboarding.MaxPhotoSizeMB); msg != "" {
			tasks[i].Status = models.UploadError
			tasks[i].Error = msg
			metrics.PhotoUploads.WithLabelValues("invalid").Inc()
			continue
		}
		tasks[i].Status = models.UploadUploading

		wg.Add(1)
		go func(i int, file PhotoFile) {
			defer wg.Done()
			key := s.objectKey(userID, file.ContentType)
			url, err := s.storage.Upload(ctx, key, file.Data, file.ContentType)
			if err != nil {
				metrics.PhotoUploads.WithLabelValues("error").Inc()
				logger.Error("Photo upload failed",
					zap.String("user_id", userID), zap.String("file", file.Name), zap.Error(err))
				tasks[i].Status = models.UploadError
				tasks[i].Error = "Upload failed, please try again"
				return
			}
			metrics.PhotoUploads.WithLabelValues("success").Inc()
			tasks[i].Status = models.UploadDone
			tasks[i].URL = url
		}(i, file)
	}
	wg.Wait()

	uploaded := make([]string, 0, len(files))
	for _, t := range tasks {
		if t.Status == models.UploadDone {
			uploaded = append(uploaded, t.URL)
		}
	}

	view := w.Snapshot()
	if len(uploaded) > 0 {
		view, err = w.AppendPhotos(uploaded)
		if errors.Is(err, onboarding.ErrPhotoLimitExceeded) {
			// A concurrent batch filled the remaining slots while this
			// one was uploading. Drop the now-orphaned objects.
			capMsg := fmt.Sprintf("You can only upload a maximum of %d photos", maxPhotos)
			s.discardUploads(ctx, userID, tasks, capMsg)
			metrics.PhotoUploads.WithLabelValues("rejected").Inc()
			return &models.PhotoUploadResponse{
				Success: false,
				Error:   capMsg,
				Tasks:   tasks,
				Photos:  w.Snapshot().Draft.Photos,
			}, nil
		}
		if err != nil {
			return nil, mapWizardErr(err)
		}
	}

	return &models.PhotoUploadResponse{
		Success: true,
		Tasks:   tasks,
		Photos:  view.Draft.Photos,
	}, nil
}

// Remove drops the photo at the given slot from the draft and deletes
// the stored object best-effort. A failed object delete only leaves
// an orphan in the bucket, so it is logged and not surfaced.
func (s *PhotoService) Remove(ctx context.Context, userID string, index int) ([]string, error) {
	w, err := s.onboarding.Wizard(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, view, err := w.RemovePhoto(index)
	if err != nil {
		return nil, mapWizardErr(err)
	}

	if key, ok := s.storage.KeyFromURL(url); ok {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete stored photo",
				zap.String("user_id", userID), zap.String("key", key), zap.Error(err))
		}
	}

	return view.Draft.Photos, nil
}

// discardUploads marks every uploaded task in the batch failed with
// the given reason and deletes its stored object best-effort.
func (s *PhotoService) discardUploads(ctx context.Context, userID string, tasks []models.UploadTask, reason string) {
	for i := range tasks {
		if tasks[i].Status != models.UploadDone {
			continue
		}
		if key, ok := s.storage.KeyFromURL(tasks[i].URL); ok {
			if err := s.storage.Delete(ctx, key); err != nil {
				logger.Warn("Failed to delete orphaned photo",
					zap.String("user_id", userID), zap.String("key", key), zap.Error(err))
			}
		}
		tasks[i].Status = models.UploadError
		tasks[i].Error = reason
		tasks[i].URL = ""
	}
}

func (s *PhotoService) objectKey(userID, contentType string) string {
	ext := allowedImageTypes[strings.ToLower(contentType)]
	return fmt.Sprintf("photos/%s/%s.%s", userID, uuid.NewString(), ext)
}

// validatePhotoFile checks one file against the type allowlist and
// the size cap. It returns an empty string for a valid file.
func validatePhotoFile(file PhotoFile, maxBytes, maxMB int) string {
	if _, ok := allowedImageTypes[strings.ToLower(file.ContentType)]; !ok {
		return "Only JPEG, PNG and WebP images are allowed"
	}
	if len(file.Data) > maxBytes {
		return fmt.Sprintf("Image must be smaller than %dMB", maxMB)
	}
	return ""
}

// Ensure PhotoService implements PhotoServiceInterface
var _ PhotoServiceInterface = (*PhotoService)(nil)
