package models

import "time"

// UpdateDraftRequest carries a partial draft edit. Every field is a
// pointer so the handler can tell "not sent" apart from "sent empty".
type UpdateDraftRequest struct {
	Name       *string    `json:"name"`
	Birthdate  *time.Time `json:"birthdate"`
	Gender     *string    `json:"gender"`
	Location   *string    `json:"location"`
	Interests  *[]string  `json:"interests"`
	LookingFor *[]string  `json:"lookingFor"`
	AgeRange   *AgeRange  `json:"ageRange"`
	Distance   *int       `json:"distance"`
	Bio        *string    `json:"bio"`
	Prompt1    *string    `json:"prompt1"`
	Prompt2    *string    `json:"prompt2"`
}

// StepInfo describes one wizard step for the client.
type StepInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// WizardStateResponse is the full onboarding state returned after
// every read or transition.
type WizardStateResponse struct {
	Step            int               `json:"step"`
	TotalSteps      int               `json:"totalSteps"`
	Steps           []StepInfo        `json:"steps"`
	Status          string            `json:"status"`
	Draft           *ProfileDraft     `json:"draft"`
	FieldErrors     map[string]string `json:"fieldErrors,omitempty"`
	SubmissionError string            `json:"submissionError,omitempty"`
	ProfileSlug     string            `json:"profileSlug,omitempty"`
}

// Photo upload task statuses
const (
	UploadPending   = "pending"
	UploadUploading = "uploading"
	UploadDone      = "done"
	UploadError     = "error"
)

// UploadTask reports the outcome of one file in a photo upload batch.
type UploadTask struct {
	FileName string `json:"fileName"`
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PhotoUploadResponse is returned after a photo batch is processed.
// Rejected batches carry Error and no tasks.
type PhotoUploadResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Tasks   []UploadTask `json:"tasks,omitempty"`
	Photos  []string     `json:"photos"`
}

// InterestsResponse lists the selectable interests catalog.
type InterestsResponse struct {
	Interests []Interest `json:"interests"`
}
