// Package persona gives the bot its voice: the dog mascot's verbal tic,
// the time-of-day greeting buckets, and every canned reply string.
package persona

import (
	"strings"

	"github.com/mtakahash/recipedog/internal/domain"
)

// Compile-time interface check.
var _ domain.Formatter = (*Formatter)(nil)

// Formatter rewrites sentence endings into the mascot's bark. It is a pure
// string substitution: ordered pairs, longest first so compound endings win.
type Formatter struct {
	replacer *strings.Replacer
}

// NewFormatter creates the dog-persona formatter.
func NewFormatter() *Formatter {
	return &Formatter{replacer: strings.NewReplacer(
		"!\n", ", woof!\n",
		".\n", ", woof!\n",
		"! ", ", woof! ",
		". ", ", woof! ",
	)}
}

// Format applies the persona to the text. Sentence-final punctuation mid-text
// is handled by the replacer; a bare trailing period gets the suffix too.
func (f *Formatter) Format(text string) string {
	out := f.replacer.Replace(text)
	if strings.HasSuffix(out, ".") || strings.HasSuffix(out, "!") {
		out = strings.TrimRight(out, ".!") + ", woof!"
	}
	return out
}

// BucketForHour maps a local hour to its greeting bucket: morning [5, 10),
// evening [16, 19), late night [0, 5), anything else is other.
func BucketForHour(hour int) domain.TimeBucket {
	switch {
	case hour >= 5 && hour < 10:
		return domain.BucketMorning
	case hour >= 16 && hour < 19:
		return domain.BucketEvening
	case hour >= 0 && hour < 5:
		return domain.BucketLateNight
	default:
		return domain.BucketOther
	}
}
