package conversation

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize prepares raw message text for keyword matching: full-width
// characters (including the U+3000 ideographic space the LINE app loves to
// insert) are folded to their narrow forms, whitespace runs collapse to a
// single space, leading/trailing whitespace is trimmed, and everything is
// lowercased.
func Normalize(s string) string {
	s = width.Fold.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
