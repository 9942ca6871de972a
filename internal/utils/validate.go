package utils

import "unicode/utf8"

// ValidLength reports whether the input's rune count lies within [min, max].
// All free-text fields of courses and applications share the same 5..255
// bounds, so the limits are passed in rather than hard-coded here.
func ValidLength(input string, min, max int) bool {
	n := utf8.RuneCountInString(input)
	return n >= min && n <= max
}
