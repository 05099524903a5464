package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
)

func newPhotoFixture(t *testing.T) (*services.PhotoService, *MockOnboardingService, *MockObjectStorage, *onboarding.Wizard) {
	t.Helper()
	cfg := testConfig()
	w := onboarding.NewWizard(
		onboarding.NewSchema(onboarding.SchemaConfig{MaxPhotos: 6, MinAge: 18}),
		models.NewProfileDraft(18),
	)
	onboardingSvc := new(MockOnboardingService)
	storage := new(MockObjectStorage)
	svc := services.NewPhotoService(onboardingSvc, storage, cfg)
	return svc, onboardingSvc, storage, w
}

func jpegFile(name string, size int) services.PhotoFile {
	return services.PhotoFile{
		Name:        name,
		ContentType: "image/jpeg",
		Data:        make([]byte, size),
	}
}

func TestPhotoService_UploadBatchStoresAllFiles(t *testing.T) {
	svc, onboardingSvc, storage, w := newPhotoFixture(t)
	ctx := context.Background()
	onboardingSvc.On("Wizard", ctx, "u1").Return(w, nil)
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").
		Return("https://cdn.outsmash.test/photos/u1/x.jpg", nil).Twice()

	resp, err := svc.UploadBatch(ctx, "u1", []services.PhotoFile{
		jpegFile("a.jpg", 1024),
		jpegFile("b.jpg", 2048),
	})
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Photos, 2)
	for _, task := range resp.Tasks {
		assert.Equal(t, models.UploadDone, task.Status)
	}
	storage.AssertExpectations(t)
}

func TestPhotoService_BatchOverCapIsRejectedWhole(t *testing.T) {
	svc, onboardingSvc, storage, w := newPhotoFixture(t)
	ctx := context.Background()
	onboardingSvc.On("Wizard", ctx, "u1").Return(w, nil)

	_, err := w.AppendPhotos([]string{"p1", "p2", "p3", "p4", "p5"})
	assert.NoError(t, err)

	// Two more would exceed the cap of six. Nothing may be uploaded,
	// not even the file that would have fit.
	resp, err := svc.UploadBatch(ctx, "u1", []services.PhotoFile{
		jpegFile("a.jpg", 1024),
		jpegFile("b.jpg", 1024),
	})
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "You can only upload a maximum of 6 photos", resp.Error)
	assert.Len(t, resp.Photos, 5)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPhotoService_ConcurrentBatchesCannotOvershootCap(t *testing.T) {
	svc, onboardingSvc, storage, w := newPhotoFixture(t)
	ctx := context.Background()
	onboardingSvc.On("Wizard", ctx, "u1").Return(w, nil)

	_, err := w.AppendPhotos([]string{"p1", "p2", "p3", "p4"})
	assert.NoError(t, err)

	// A rival batch claims the two remaining slots while this batch's
	// files are in flight, after the pre-upload count check passed.
	var rival sync.Once
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").
		Run(func(mock.Arguments) {
			rival.Do(func() {
				_, err := w.AppendPhotos([]string{"r1", "r2"})
				assert.NoError(t, err)
			})
		}).
		Return("https://cdn.outsmash.test/photos/u1/x.jpg", nil).Twice()
	storage.On("KeyFromURL", "https://cdn.outsmash.test/photos/u1/x.jpg").
		Return("photos/u1/x.jpg", true).Twice()
	storage.On("Delete", ctx, "photos/u1/x.jpg").Return(nil).Twice()

	resp, err := svc.UploadBatch(ctx, "u1", []services.PhotoFile{
		jpegFile("a.jpg", 1024),
		jpegFile("b.jpg", 1024),
	})
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "You can only upload a maximum of 6 photos", resp.Error)
	assert.Equal(t, 6, w.PhotoCount())
	for _, task := range resp.Tasks {
		assert.Equal(t, models.UploadError, task.Status)
		assert.Empty(t, task.URL)
	}
	storage.AssertExpectations(t)
}

func TestPhotoService_InvalidFilesFailIndividually(t *testing.T) {
	svc, onboardingSvc, storage, w := newPhotoFixture(t)
	ctx := context.Background()
	onboardingSvc.On("Wizard", ctx, "u1").Return(w, nil)
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").
		Return("https://cdn.outsmash.test/photos/u1/ok.jpg", nil).Once()

	resp, err := svc.UploadBatch(ctx, "u1", []services.PhotoFile{
		jpegFile("ok.jpg", 1024),
		{Name: "too-big.jpg", ContentType: "image/jpeg", Data: make([]byte, 6*1024*1024)},
		{Name: "anim.gif", ContentType: "image/gif", Data: make([]byte, 1024)},
	})
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, models.UploadDone, resp.Tasks[0].Status)
	assert.Equal(t, models.UploadError, resp.Tasks[1].Status)
	assert.Equal(t, "Image must be smaller than 5MB", resp.Tasks[1].Error)
	assert.Equal(t, models.UploadError, resp.Tasks[2].Status)
	assert.Equal(t, "Only JPEG, PNG and WebP images are allowed", resp.Tasks[2].Error)
	assert.Equal(t, []string{"https://cdn.outsmash.test/photos/u1/ok.jpg"}, resp.Photos)
}

func TestPhotoService_FailedUploadDoesNotSinkTheBatch(t *testing.T) {
	svc, onboardingSvc, storage, w := newPhotoFixture(t)
	ctx := context.Background()
	onboardingSvc.On("Wizard", ctx, "u1").Return(w, nil)
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "image/png").
		Return("", errors.New("bucket unavailable")).Once()
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").
		Return("https://cdn.outsmash.test/photos/u1/ok.jpg", nil).Once()

	resp, err := svc.UploadBatch(ctx, "u1", []services.PhotoFile{
		{Name: "fails.png", ContentType: "image/png", Data: make([]byte, 1024)},
		jpegFile("ok.jpg", 1024),
	})
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, models.UploadError, resp.Tasks[0].Status)
	assert.Equal(t, models.UploadDone, resp.Tasks[1].Status)
	assert.Equal(t, []string{"https://cdn.outsmash.test/photos/u1/ok.jpg"}, resp.Photos)
}

func TestPhotoService_RemoveDeletesObjectBestEffort(t *testing.T) {
	svc, onboardingSvc, storage, w := newPhotoFixture(t)
	ctx := context.Background()
	onboardingSvc.On("Wizard", ctx, "u1").Return(w, nil)

	url := "https://cdn.outsmash.test/user-photos/photos/u1/a.jpg"
	_, err := w.AppendPhotos([]string{url, "https://cdn.outsmash.test/user-photos/photos/u1/b.jpg"})
	assert.NoError(t, err)

	storage.On("KeyFromURL", url).Return("photos/u1/a.jpg", true).Once()
	storage.On("Delete", ctx, "photos/u1/a.jpg").Return(errors.New("transient")).Once()

	// Object delete failure is swallowed; the draft is updated anyway.
	photos, err := svc.Remove(ctx, "u1", 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.outsmash.test/user-photos/photos/u1/b.jpg"}, photos)
	storage.AssertExpectations(t)
}
