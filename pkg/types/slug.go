package types

import (
	"strconv"
	"strings"
)

// Slugify derives the url safe identifier for a title: lowercased, punctuation
// stripped, whitespace replaced with hyphens, hyphen runs collapsed. A
// positive year is appended as "-<year>". An empty title yields an empty slug
// and the caller falls back to id based routing.
func Slugify(title string, year int) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// punctuation (hyphens included) is dropped entirely
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return ""
	}
	if year > 0 {
		slug += "-" + strconv.Itoa(year)
	}
	return slug
}
