package onboarding

import (
	"fmt"
	"strings"
	"time"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
)

// Draft field names. Handlers and the step registry refer to fields by
// these keys, and validation errors come back keyed by them.
const (
	FieldName       = "name"
	FieldBirthdate  = "birthdate"
	FieldGender     = "gender"
	FieldLocation   = "location"
	FieldPhotos     = "photos"
	FieldInterests  = "interests"
	FieldLookingFor = "lookingFor"
	FieldAgeRange   = "ageRange"
	FieldDistance   = "distance"
	FieldBio        = "bio"
	FieldPrompt1    = "prompt1"
	FieldPrompt2    = "prompt2"
)

const (
	minNameLen = 2
	minBioLen  = 10
	maxBioLen  = 500
)

// earliestBirthdate is the oldest accepted birth date.
var earliestBirthdate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// SchemaConfig carries the tunable validation limits.
type SchemaConfig struct {
	MaxPhotos int
	MinAge    int
}

// Schema validates profile drafts field by field. It is stateless and
// safe for concurrent use.
type Schema struct {
	maxPhotos int
	minAge    int
	now       func() time.Time
}

// NewSchema creates a Schema with the given limits.
func NewSchema(cfg SchemaConfig) *Schema {
	return &Schema{
		maxPhotos: cfg.MaxPhotos,
		minAge:    cfg.MinAge,
		now:       time.Now,
	}
}

// ValidateFields checks only the named fields of the draft and returns
// a message per failing field. An empty map means the subset is valid.
func (s *Schema) ValidateFields(draft *models.ProfileDraft, fields []string) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		if msg := s.validateField(draft, f); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// ValidateAll checks every field of the draft.
func (s *Schema) ValidateAll(draft *models.ProfileDraft) map[string]string {
	return s.ValidateFields(draft, []string{
		FieldName, FieldBirthdate, FieldGender, FieldLocation,
		FieldPhotos, FieldInterests, FieldLookingFor,
		FieldAgeRange, FieldDistance, FieldBio,
	})
}

func (s *Schema) validateField(d *models.ProfileDraft, field string) string {
	switch field {
	case FieldName:
		if len(strings.TrimSpace(d.Name)) < minNameLen {
			return fmt.Sprintf("Name must be at least %d characters", minNameLen)
		}
	case FieldBirthdate:
		if d.Birthdate == nil {
			return "Please select your birth date"
		}
		now := s.now()
		if d.Birthdate.After(now) {
			return "Birth date cannot be in the future"
		}
		if d.Birthdate.Before(earliestBirthdate) {
			return "Please enter a valid birth date"
		}
		if d.Age(now) < s.minAge {
			return fmt.Sprintf("You must be at least %d years old", s.minAge)
		}
	case FieldGender:
		if d.Gender == "" {
			return "Please select your gender"
		}
		if !models.IsValidGender(d.Gender) {
			return "Please select a valid gender option"
		}
	case FieldLocation:
		if strings.TrimSpace(d.Location) == "" {
			return "Please enter your location"
		}
	case FieldPhotos:
		if len(d.Photos) == 0 {
			return "Please upload at least one photo"
		}
		if len(d.Photos) > s.maxPhotos {
			return fmt.Sprintf("You can only upload a maximum of %d photos", s.maxPhotos)
		}
	case FieldInterests:
		if len(d.Interests) == 0 {
			return "Please select at least one interest"
		}
	case FieldLookingFor:
		if len(d.LookingFor) == 0 {
			return "Please select what you're looking for"
		}
	case FieldAgeRange:
		if d.AgeRange.Min < s.minAge {
			return fmt.Sprintf("Minimum age must be at least %d", s.minAge)
		}
		if d.AgeRange.Max < d.AgeRange.Min {
			return "Minimum age cannot exceed maximum age"
		}
	case FieldDistance:
		if d.Distance < 1 {
			return "Distance must be at least 1"
		}
	case FieldBio:
		trimmed := strings.TrimSpace(d.Bio)
		if len(trimmed) < minBioLen {
			return "Please write a bit more about yourself"
		}
		if len(trimmed) > maxBioLen {
			return fmt.Sprintf("Bio must not exceed %d characters", maxBioLen)
		}
	}
	return ""
}
