package onboarding

import (
	"errors"
	"sync"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
)

// Status is the wizard lifecycle state.
type Status string

const (
	// StatusEditing means the user is filling in steps.
	StatusEditing Status = "editing"
	// StatusSubmitting means the final submission is in flight. All
	// transitions are rejected until it settles.
	StatusSubmitting Status = "submitting"
	// StatusCompleted means the profile was persisted.
	StatusCompleted Status = "completed"
	// StatusSubmissionFailed means the last submission errored. The
	// wizard stays on the last step and accepts edits and retries.
	StatusSubmissionFailed Status = "submission_failed"
)

var (
	// ErrSubmissionInFlight is returned when a transition arrives
	// while a submission is still running.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrAlreadyCompleted is returned for transitions after the
	// wizard has completed.
	ErrAlreadyCompleted = errors.New("onboarding already completed")
	// ErrAtFirstStep is returned by Previous on the first step.
	ErrAtFirstStep = errors.New("already at the first step")
	// ErrPhotoIndexOutOfRange is returned when removing a photo slot
	// that does not exist.
	ErrPhotoIndexOutOfRange = errors.New("photo index out of range")
	// ErrPhotoLimitExceeded is returned when an append would push the
	// draft past the photo cap.
	ErrPhotoLimitExceeded = errors.New("photo limit exceeded")
)

// Wizard is the per-user onboarding state machine. All methods take an
// internal lock, so at most one transition is in flight at a time and
// concurrent calls observe consistent state.
type Wizard struct {
	mu     sync.Mutex
	schema *Schema

	draft  *models.ProfileDraft
	step   int
	status Status

	submitErr   string
	profileSlug string
}

// View is a consistent snapshot of the wizard. Draft is a deep copy,
// so callers can read it without holding the wizard's lock.
type View struct {
	Step            int
	Status          Status
	Draft           models.ProfileDraft
	SubmissionError string
	ProfileSlug     string
}

// NewWizard starts a wizard at the first step with the given draft.
func NewWizard(schema *Schema, draft *models.ProfileDraft) *Wizard {
	return &Wizard{
		schema: schema,
		draft:  draft,
		status: StatusEditing,
	}
}

// Snapshot returns the current state of the wizard.
func (w *Wizard) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Wizard) viewLocked() View {
	return View{
		Step:            w.step,
		Status:          w.status,
		Draft:           cloneDraft(w.draft),
		SubmissionError: w.submitErr,
		ProfileSlug:     w.profileSlug,
	}
}

// ApplyEdits merges a partial edit into the draft. Unset request
// fields are left untouched. Interest and looking-for lists are
// de-duplicated preserving first occurrence, and an inverted age range
// is clamped so the bound that moved drags the other with it.
func (w *Wizard) ApplyEdits(req *models.UpdateDraftRequest) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return w.viewLocked(), err
	}

	d := w.draft
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Birthdate != nil {
		b := *req.Birthdate
		d.Birthdate = &b
	}
	if req.Gender != nil {
		d.Gender = *req.Gender
	}
	if req.Location != nil {
		d.Location = *req.Location
	}
	if req.Interests != nil {
		d.Interests = dedupe(*req.Interests)
	}
	if req.LookingFor != nil {
		d.LookingFor = dedupe(*req.LookingFor)
	}
	if req.AgeRange != nil {
		d.AgeRange = clampAgeRange(d.AgeRange, *req.AgeRange)
	}
	if req.Distance != nil {
		d.Distance = *req.Distance
	}
	if req.Bio != nil {
		d.Bio = *req.Bio
	}
	if req.Prompt1 != nil {
		d.Prompt1 = *req.Prompt1
	}
	if req.Prompt2 != nil {
		d.Prompt2 = *req.Prompt2
	}
	return w.viewLocked(), nil
}

// Next validates the current step's fields and advances on success.
// On the last step a successful validation moves the wizard to
// StatusSubmitting and reports readyToSubmit; the caller then performs
// the submission and settles it with FinishSubmit.
func (w *Wizard) Next() (view View, fieldErrs map[string]string, readyToSubmit bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return w.viewLocked(), nil, false, err
	}

	if w.step < len(steps)-1 {
		step := steps[w.step]
		if errs := w.schema.ValidateFields(w.draft, step.Fields); len(errs) > 0 {
			return w.viewLocked(), errs, false, nil
		}
		w.step++
		w.status = StatusEditing
		return w.viewLocked(), nil, false, nil
	}

	// The final gate re-checks the whole draft, not just the last
	// step's fields: edits and photo removals after a step was passed
	// can invalidate earlier answers.
	if errs := w.schema.ValidateAll(w.draft); len(errs) > 0 {
		return w.viewLocked(), errs, false, nil
	}
	w.status = StatusSubmitting
	w.submitErr = ""
	return w.viewLocked(), nil, true, nil
}

// Previous moves back one step without validating anything, so users
// can revisit earlier answers even while the current step is invalid.
func (w *Wizard) Previous() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return w.viewLocked(), err
	}
	if w.step == 0 {
		return w.viewLocked(), ErrAtFirstStep
	}
	w.step--
	w.status = StatusEditing
	return w.viewLocked(), nil
}

// AppendPhotos adds uploaded photo URLs to the draft in one atomic
// append, keeping slot positions stable under concurrent uploads. The
// photo cap is enforced here, under the lock, so concurrent batches
// that each passed an earlier count check cannot overshoot it.
func (w *Wizard) AppendPhotos(urls []string) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return w.viewLocked(), err
	}
	if len(w.draft.Photos)+len(urls) > w.schema.maxPhotos {
		return w.viewLocked(), ErrPhotoLimitExceeded
	}
	w.draft.Photos = append(w.draft.Photos, urls...)
	return w.viewLocked(), nil
}

// RemovePhoto deletes the photo at the given slot and returns its URL.
// Later photos shift down, so slot 0 always holds the primary photo.
func (w *Wizard) RemovePhoto(index int) (string, View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return "", w.viewLocked(), err
	}
	if index < 0 || index >= len(w.draft.Photos) {
		return "", w.viewLocked(), ErrPhotoIndexOutOfRange
	}
	url := w.draft.Photos[index]
	w.draft.Photos = append(w.draft.Photos[:index], w.draft.Photos[index+1:]...)
	return url, w.viewLocked(), nil
}

// PhotoCount returns the number of photos currently in the draft.
func (w *Wizard) PhotoCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.draft.Photos)
}

// FinishSubmit settles an in-flight submission. On success the wizard
// completes with the persisted profile's slug; on failure it stays on
// the last step with the error surfaced, ready for edits and a retry.
func (w *Wizard) FinishSubmit(slug string, submitErr error) View {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusSubmitting {
		return w.viewLocked()
	}
	if submitErr != nil {
		w.status = StatusSubmissionFailed
		w.submitErr = submitErr.Error()
		return w.viewLocked()
	}
	w.status = StatusCompleted
	w.profileSlug = slug
	w.submitErr = ""
	return w.viewLocked()
}

func (w *Wizard) editableLocked() error {
	switch w.status {
	case StatusSubmitting:
		return ErrSubmissionInFlight
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	return nil
}

func clampAgeRange(old, next models.AgeRange) models.AgeRange {
	if next.Min != old.Min && next.Min > next.Max {
		next.Max = next.Min
	}
	if next.Max != old.Max && next.Max < next.Min {
		next.Min = next.Max
	}
	return next
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cloneDraft(d *models.ProfileDraft) models.ProfileDraft {
	c := *d
	c.Photos = append([]string(nil), d.Photos...)
	c.Interests = append([]string(nil), d.Interests...)
	c.LookingFor = append([]string(nil), d.LookingFor...)
	if d.Birthdate != nil {
		b := *d.Birthdate
		c.Birthdate = &b
	}
	return c
}
