package model

import "regexp"

// Angolan mobile numbering: exactly 9 digits, leading 9.
var phonePattern = regexp.MustCompile(`^9[0-9]{8}$`)

// ValidPhone reports whether s is a well-formed subscriber number. Callers
// must reject invalid numbers before any lookup is attempted.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
