package models

import (
	"time"
)

// Gender options a user can pick during onboarding
const (
	GenderWoman     = "woman"
	GenderMan       = "man"
	GenderNonBinary = "non-binary"
	GenderOther     = "other"
)

// Genders lists the valid gender options in display order.
var Genders = []string{GenderWoman, GenderMan, GenderNonBinary, GenderOther}

// IsValidGender reports whether g is one of the supported options.
func IsValidGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// AgeRange is the preferred partner age window. Min never exceeds Max
// once the range has passed through draft editing.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ProfileDraft holds the in-progress onboarding answers for one user.
// Birthdate is nil until the user picks one so an unset date is
// distinguishable from a zero time.
type ProfileDraft struct {
	Name       string     `json:"name"`
	Birthdate  *time.Time `json:"birthdate"`
	Gender     string     `json:"gender"`
	Location   string     `json:"location"`
	Photos     []string   `json:"photos"`
	Interests  []string   `json:"interests"`
	LookingFor []string   `json:"lookingFor"`
	AgeRange   AgeRange   `json:"ageRange"`
	Distance   int        `json:"distance"`
	Bio        string     `json:"bio"`
	Prompt1    string     `json:"prompt1"`
	Prompt2    string     `json:"prompt2"`
}

// NewProfileDraft returns an empty draft with the default discovery
// preferences filled in.
func NewProfileDraft(minAge int) *ProfileDraft {
	return &ProfileDraft{
		Photos:     []string{},
		Interests:  []string{},
		LookingFor: []string{},
		AgeRange:   AgeRange{Min: minAge, Max: 50},
		Distance:   25,
	}
}

// Age returns the user's age in full years at the given moment, or 0
// when no birthdate is set.
func (d *ProfileDraft) Age(now time.Time) int {
	if d.Birthdate == nil {
		return 0
	}
	b := *d.Birthdate
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Profile is a persisted, completed profile record.
type Profile struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Birthdate   *time.Time `json:"birthdate"`
	Gender      string     `json:"gender"`
	Location    string     `json:"location"`
	Bio         string     `json:"bio"`
	Prompt1     string     `json:"prompt1"`
	Prompt2     string     `json:"prompt2"`
	IsComplete  bool       `json:"isComplete"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Secure field, cleared before the record leaves the repository
	// unless explicitly requested.
	PasswordHash string `json:"-"`
}

// Photo is one stored profile image. Position is the zero-based slot
// in the user's photo grid; position 0 is the primary photo.
type Photo struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preferences is the persisted discovery settings row for a profile.
type Preferences struct {
	ProfileID  string   `json:"profileId"`
	LookingFor []string `json:"lookingFor"`
	AgeMin     int      `json:"ageMin"`
	AgeMax     int      `json:"ageMax"`
	Distance   int      `json:"distance"`
}

// Interest is one entry from the selectable interests catalog.
type Interest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// PublicProfileResponse is the public API shape of a completed profile.
type PublicProfileResponse struct {
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Location  string   `json:"location"`
	Bio       string   `json:"bio"`
	Prompt1   string   `json:"prompt1,omitempty"`
	Prompt2   string   `json:"prompt2,omitempty"`
	Photos    []string `json:"photos"`
	Interests []string `json:"interests"`
	Link      string   `json:"link"`
}

// ToPublicResponse converts a Profile plus its photo URLs and interest
// names into the public API shape.
func (p *Profile) ToPublicResponse(baseURL string, photos []string, interests []string, now time.Time) PublicProfileResponse {
	age := 0
	if p.Birthdate != nil {
		d := ProfileDraft{Birthdate: p.Birthdate}
		age = d.Age(now)
	}
	return PublicProfileResponse{
		Slug:      p.Slug,
		Name:      p.Name,
		Age:       age,
		Gender:    p.Gender,
		Location:  p.Location,
		Bio:       p.Bio,
		Prompt1:   p.Prompt1,
		Prompt2:   p.Prompt2,
		Photos:    photos,
		Interests: interests,
		Link:      baseURL + "/profile/" + p.Slug,
	}
}
