package utils

import (
	"strings"
	"unicode"
)

// Slugify converts a name into a lowercase URL-safe slug. Letters, digits,
// underscores and hyphens are kept; runs of anything else collapse into a
// single hyphen. "Chair_2" -> "chair_2", "Old Lamp!" -> "old-lamp".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}

	return strings.Trim(b.String(), "-_")
}
