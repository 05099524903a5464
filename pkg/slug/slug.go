package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlphaRegex = regexp.MustCompile(`[^a-zA-Z ]+`)
var multiSpaceRegex = regexp.MustCompile(` +`)

// GenerateProfileSlug generates a URL-friendly slug for a public profile page
// from the display name plus a short unique suffix.
// Example: "Jamie Lee" + "4f2a" -> "jamie-lee-4f2a"
func GenerateProfileSlug(name, suffix string) string {
	s := nonAlphaRegex.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ToLower(s)

	if s == "" {
		return suffix
	}

	return fmt.Sprintf("%s-%s", s, suffix)
}
