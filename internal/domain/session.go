// Package domain defines the core types and interfaces for the recipe bot.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// Mode tracks what kind of conversation a session is in.
type Mode int

const (
	// ModeNone means no walkthrough is in progress; the session carries
	// no meaningful step state and may be absent entirely.
	ModeNone Mode = iota
	// ModeWalkthrough means the user is partway through a stepped recipe.
	ModeWalkthrough
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeWalkthrough:
		return "walkthrough"
	default:
		return "none"
	}
}

// Session holds per-user conversational state. At most one session exists
// per user ID.
type Session struct {
	UserID string
	Mode   Mode
	// Steps are the segments of a generated recipe, split on the step
	// marker. Steps[0] is the preamble before the first marker; the
	// walkthrough serves Steps[1:] one message at a time.
	Steps []string
	// StepIndex is a 1-based cursor into Steps. While the walkthrough is
	// active it is always >= 1 and < len(Steps).
	StepIndex int
	// UpdatedAt is bumped on every mutation and drives idle eviction.
	UpdatedAt time.Time
}

// Active reports whether the session is mid-walkthrough.
func (s *Session) Active() bool {
	return s != nil && s.Mode == ModeWalkthrough
}
