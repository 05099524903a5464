package onboarding

import "github.com/shah-aaseesh/outsmash-connect-grow/internal/models"

// Step is one screen of the onboarding wizard. Fields lists the draft
// fields the step owns; advancing past the step validates exactly
// those fields and nothing else.
type Step struct {
	ID     string
	Label  string
	Icon   string
	Fields []string
}

// steps is the wizard in order. Appending a new entry here is the only
// change needed to add a screen.
var steps = []Step{
	{ID: "name", Label: "Your name", Icon: "user", Fields: []string{FieldName}},
	{ID: "birthdate", Label: "Birthday", Icon: "cake", Fields: []string{FieldBirthdate}},
	{ID: "gender", Label: "Gender", Icon: "users", Fields: []string{FieldGender}},
	{ID: "location", Label: "Location", Icon: "map-pin", Fields: []string{FieldLocation}},
	{ID: "photos", Label: "Photos", Icon: "camera", Fields: []string{FieldPhotos}},
	{ID: "interests", Label: "Interests", Icon: "heart", Fields: []string{FieldInterests}},
	{ID: "preferences", Label: "Preferences", Icon: "sliders", Fields: []string{FieldLookingFor, FieldAgeRange, FieldDistance}},
	{ID: "bio", Label: "About you", Icon: "pencil", Fields: []string{FieldBio, FieldPrompt1, FieldPrompt2}},
}

// Steps returns the ordered wizard steps.
func Steps() []Step {
	return steps
}

// StepCount returns the number of wizard steps.
func StepCount() int {
	return len(steps)
}

// StepInfos returns the client-facing step descriptors.
func StepInfos() []models.StepInfo {
	infos := make([]models.StepInfo, 0, len(steps))
	for _, s := range steps {
		infos = append(infos, models.StepInfo{ID: s.ID, Label: s.Label, Icon: s.Icon})
	}
	return infos
}
