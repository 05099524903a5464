package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testSchema() *Schema {
	s := NewSchema(SchemaConfig{MaxPhotos: 6, MinAge: 18})
	s.now = func() time.Time { return testNow }
	return s
}

func validDraft() *models.ProfileDraft {
	birth := time.Date(1995, time.March, 10, 0, 0, 0, 0, time.UTC)
	return &models.ProfileDraft{
		Name:       "Jamie Lee",
		Birthdate:  &birth,
		Gender:     models.GenderWoman,
		Location:   "Austin, TX",
		Photos:     []string{"https://cdn.example.com/p/1.jpg"},
		Interests:  []string{"hiking"},
		LookingFor: []string{"friendship"},
		AgeRange:   models.AgeRange{Min: 18, Max: 50},
		Distance:   25,
		Bio:        "I like long walks and longer coffees.",
	}
}

func TestValidateAllPassesForCompleteDraft(t *testing.T) {
	errs := testSchema().ValidateAll(validDraft())
	assert.Empty(t, errs)
}

func TestValidateFieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ProfileDraft)
		field   string
		wantMsg string
	}{
		{
			name:    "name too short",
			mutate:  func(d *models.ProfileDraft) { d.Name = "J" },
			field:   FieldName,
			wantMsg: "Name must be at least 2 characters",
		},
		{
			name:    "name only whitespace",
			mutate:  func(d *models.ProfileDraft) { d.Name = "   " },
			field:   FieldName,
			wantMsg: "Name must be at least 2 characters",
		},
		{
			name:    "missing birthdate",
			mutate:  func(d *models.ProfileDraft) { d.Birthdate = nil },
			field:   FieldBirthdate,
			wantMsg: "Please select your birth date",
		},
		{
			name: "birthdate in the future",
			mutate: func(d *models.ProfileDraft) {
				b := testNow.AddDate(1, 0, 0)
				d.Birthdate = &b
			},
			field:   FieldBirthdate,
			wantMsg: "Birth date cannot be in the future",
		},
		{
			name: "birthdate before 1900",
			mutate: func(d *models.ProfileDraft) {
				b := time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
				d.Birthdate = &b
			},
			field:   FieldBirthdate,
			wantMsg: "Please enter a valid birth date",
		},
		{
			name: "under minimum age",
			mutate: func(d *models.ProfileDraft) {
				b := testNow.AddDate(-17, 0, 0)
				d.Birthdate = &b
			},
			field:   FieldBirthdate,
			wantMsg: "You must be at least 18 years old",
		},
		{
			name:    "missing gender",
			mutate:  func(d *models.ProfileDraft) { d.Gender = "" },
			field:   FieldGender,
			wantMsg: "Please select your gender",
		},
		{
			name:    "unknown gender option",
			mutate:  func(d *models.ProfileDraft) { d.Gender = "robot" },
			field:   FieldGender,
			wantMsg: "Please select a valid gender option",
		},
		{
			name:    "missing location",
			mutate:  func(d *models.ProfileDraft) { d.Location = "  " },
			field:   FieldLocation,
			wantMsg: "Please enter your location",
		},
		{
			name:    "no photos",
			mutate:  func(d *models.ProfileDraft) { d.Photos = nil },
			field:   FieldPhotos,
			wantMsg: "Please upload at least one photo",
		},
		{
			name: "too many photos",
			mutate: func(d *models.ProfileDraft) {
				d.Photos = make([]string, 7)
			},
			field:   FieldPhotos,
			wantMsg: "You can only upload a maximum of 6 photos",
		},
		{
			name:    "no interests",
			mutate:  func(d *models.ProfileDraft) { d.Interests = []string{} },
			field:   FieldInterests,
			wantMsg: "Please select at least one interest",
		},
		{
			name:    "no looking for selection",
			mutate:  func(d *models.ProfileDraft) { d.LookingFor = nil },
			field:   FieldLookingFor,
			wantMsg: "Please select what you're looking for",
		},
		{
			name:    "age range minimum below floor",
			mutate:  func(d *models.ProfileDraft) { d.AgeRange.Min = 17 },
			field:   FieldAgeRange,
			wantMsg: "Minimum age must be at least 18",
		},
		{
			name:    "age range inverted",
			mutate:  func(d *models.ProfileDraft) { d.AgeRange = models.AgeRange{Min: 40, Max: 30} },
			field:   FieldAgeRange,
			wantMsg: "Minimum age cannot exceed maximum age",
		},
		{
			name:    "distance below one",
			mutate:  func(d *models.ProfileDraft) { d.Distance = 0 },
			field:   FieldDistance,
			wantMsg: "Distance must be at least 1",
		},
		{
			name:    "bio too short",
			mutate:  func(d *models.ProfileDraft) { d.Bio = "Hi there" },
			field:   FieldBio,
			wantMsg: "Please write a bit more about yourself",
		},
		{
			name: "bio too long",
			mutate: func(d *models.ProfileDraft) {
				long := make([]byte, 501)
				for i := range long {
					long[i] = 'a'
				}
				d.Bio = string(long)
			},
			field:   FieldBio,
			wantMsg: "Bio must not exceed 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)
			errs := testSchema().ValidateAll(draft)
			assert.Equal(t, tt.wantMsg, errs[tt.field])
		})
	}
}

func TestValidateFieldsOnlyChecksRequestedFields(t *testing.T) {
	draft := validDraft()
	draft.Bio = ""
	draft.Photos = nil

	errs := testSchema().ValidateFields(draft, []string{FieldName, FieldGender})
	assert.Empty(t, errs, "untouched fields must not fail validation of a different subset")

	errs = testSchema().ValidateFields(draft, []string{FieldBio})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, FieldBio)
}

func TestAgeIsComputedFromFullYears(t *testing.T) {
	birth := time.Date(2000, time.June, 16, 0, 0, 0, 0, time.UTC)
	d := &models.ProfileDraft{Birthdate: &birth}
	// One day before the 25th birthday.
	assert.Equal(t, 24, d.Age(testNow))

	birth = time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	d.Birthdate = &birth
	assert.Equal(t, 25, d.Age(testNow))
}
