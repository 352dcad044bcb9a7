// Package engine implements the step walkthrough state machine: it splits a
// generated recipe on its step markers and serves one step per user message.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
	"github.com/mtakahash/recipedog/internal/persona"
)

// StepMarker is the literal the generator is prompted to delimit steps with.
const StepMarker = "STEP"

// Option configures the engine.
type Option func(*Engine)

// WithMarker overrides the step delimiter.
func WithMarker(marker string) Option {
	return func(e *Engine) {
		e.marker = marker
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine manages walkthrough sessions. It depends only on the store
// interface and is fully testable without a live channel or generator.
type Engine struct {
	store  domain.SessionStore
	log    *logger.Logger
	marker string
	now    func() time.Time
}

// New creates a walkthrough engine with the given dependencies and options.
func New(store domain.SessionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		log:    log,
		marker: StepMarker,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start splits recipeText on the step marker and, if it contains at least
// one step, opens a walkthrough session at step 1 and returns the first
// step's text. A recipe without markers is returned whole and no session is
// created. Rejoining the stored segments with the marker reproduces the
// recipe exactly, so no step text is ever lost.
func (e *Engine) Start(ctx context.Context, userID, recipeText string) (string, error) {
	segments := strings.Split(recipeText, e.marker)
	if len(segments) <= 1 {
		e.log.Debug("no %s markers for user %s, replying with the whole recipe", e.marker, userID)
		return recipeText, nil
	}

	session := &domain.Session{
		UserID:    userID,
		Mode:      domain.ModeWalkthrough,
		Steps:     segments,
		StepIndex: 1,
		UpdatedAt: e.now(),
	}
	if err := e.store.Put(ctx, session); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started walkthrough for user %s (%d steps)", userID, len(segments)-1)
	return e.stepReply(segments, 1), nil
}

// Advance moves the user's walkthrough to the next step and returns its
// text. On the final step it returns the completion line and deletes the
// session. Returns ErrNoActiveSession if no walkthrough is in progress.
func (e *Engine) Advance(ctx context.Context, userID string) (string, error) {
	var reply string
	err := e.store.Update(ctx, userID, func(sess *domain.Session) *domain.Session {
		if !sess.Active() {
			return sess
		}

		next := sess.StepIndex + 1
		if next >= len(sess.Steps) {
			e.log.Info("walkthrough for user %s complete", userID)
			reply = persona.LineWalkthroughDone()
			return nil
		}

		sess.StepIndex = next
		sess.UpdatedAt = e.now()
		e.log.Debug("user %s advanced to step %d/%d", userID, next, len(sess.Steps)-1)
		reply = e.stepReply(sess.Steps, next)
		return sess
	})
	if err != nil {
		return "", fmt.Errorf("advancing session: %w", err)
	}
	if reply == "" {
		return "", domain.ErrNoActiveSession
	}
	return reply, nil
}

// stepReply formats a single step plus the continuation prompt. The marker
// is re-prefixed so the user sees the step exactly as generated.
func (e *Engine) stepReply(segments []string, idx int) string {
	step := strings.TrimSpace(e.marker + segments[idx])
	return step + "\n\n" + persona.LineContinuePrompt()
}
