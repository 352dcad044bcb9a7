package domain

import (
	"context"
	"time"
)

// SessionStore persists per-user walkthrough sessions. Implementations can
// be in-memory, Redis, or any other keyed backend.
type SessionStore interface {
	// Get returns the session for a user, or ErrNotFound.
	Get(ctx context.Context, userID string) (*Session, error)
	// Put replaces any existing session for the user.
	Put(ctx context.Context, session *Session) error
	// Delete removes the user's session. Deleting an absent session is a
	// no-op.
	Delete(ctx context.Context, userID string) error
	// Update runs fn under the store's lock as an atomic read-modify-write.
	// fn receives the current session (nil if absent) and returns the
	// replacement; returning nil deletes the session. This is what keeps
	// two near-simultaneous messages from losing a walkthrough advance.
	Update(ctx context.Context, userID string, fn func(*Session) *Session) error
	// Evict removes walkthrough sessions not touched since idleBefore and
	// returns how many were removed.
	Evict(ctx context.Context, idleBefore time.Time) (int, error)
}

// IntentClassifier maps raw message text to an intent. Classification is
// infallible: unmatched input falls through to IntentFreeChat.
type IntentClassifier interface {
	Classify(ctx context.Context, userID, text string) Intent
}

// RecipeGenerator produces recipe text from an ingredients list or dish
// query. Failures wrap ErrGeneration.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, query string) (string, error)
}

// ChatGenerator produces free-conversation replies, toned by the current
// time-of-day bucket. Failures wrap ErrGeneration.
type ChatGenerator interface {
	GenerateChat(ctx context.Context, text string, bucket TimeBucket) (string, error)
}

// Formatter applies the bot persona to outgoing text. Pure; always succeeds.
type Formatter interface {
	Format(text string) string
}

// Replier delivers a reply through the messaging channel, keyed by the
// per-event reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}
