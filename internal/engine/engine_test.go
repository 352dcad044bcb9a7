package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
	"github.com/mtakahash/recipedog/internal/persona"
	"github.com/mtakahash/recipedog/internal/storage"
)

const steppedRecipe = "[Dish] Fried egg with cabbage\n[Procedure] " +
	"STEP1 Chop the cabbage. " +
	"STEP2 Fry it with the eggs. " +
	"STEP3 Season and serve."

func setupEngine(t *testing.T) (*Engine, *storage.MemoryStore, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	return New(store, log), store, context.Background()
}

func TestStartWithoutMarkers(t *testing.T) {
	eng, store, ctx := setupEngine(t)

	recipe := "Just fry the egg. Done."
	reply, err := eng.Start(ctx, "user-1", recipe)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if reply != recipe {
		t.Errorf("expected the whole recipe back, got %q", reply)
	}
	if _, err := store.Get(ctx, "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected no session, got err=%v", err)
	}
}

func TestStartCreatesSession(t *testing.T) {
	eng, store, ctx := setupEngine(t)

	reply, err := eng.Start(ctx, "user-1", steppedRecipe)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(reply, "STEP1 Chop the cabbage.") {
		t.Errorf("reply missing step 1: %q", reply)
	}
	if strings.Contains(reply, "STEP2") {
		t.Errorf("reply leaked step 2: %q", reply)
	}
	if !strings.Contains(reply, persona.LineContinuePrompt()) {
		t.Errorf("reply missing continuation prompt: %q", reply)
	}

	sess, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !sess.Active() {
		t.Fatal("session not active")
	}
	if sess.StepIndex != 1 {
		t.Errorf("expected step index 1, got %d", sess.StepIndex)
	}
	if len(sess.Steps) != 4 { // preamble + 3 steps
		t.Errorf("expected 4 segments, got %d", len(sess.Steps))
	}
}

func TestSegmentsRoundTrip(t *testing.T) {
	eng, store, ctx := setupEngine(t)

	if _, err := eng.Start(ctx, "user-1", steppedRecipe); err != nil {
		t.Fatalf("start: %v", err)
	}
	sess, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// No step text may be lost by the split.
	if got := strings.Join(sess.Steps, StepMarker); got != steppedRecipe {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", got, steppedRecipe)
	}
}

func TestAdvanceThroughAllSteps(t *testing.T) {
	eng, store, ctx := setupEngine(t)

	if _, err := eng.Start(ctx, "user-1", steppedRecipe); err != nil {
		t.Fatalf("start: %v", err)
	}

	reply, err := eng.Advance(ctx, "user-1")
	if err != nil {
		t.Fatalf("advance to step 2: %v", err)
	}
	if !strings.Contains(reply, "STEP2 Fry it with the eggs.") {
		t.Errorf("expected step 2, got %q", reply)
	}

	reply, err = eng.Advance(ctx, "user-1")
	if err != nil {
		t.Fatalf("advance to step 3: %v", err)
	}
	if !strings.Contains(reply, "STEP3 Season and serve.") {
		t.Errorf("expected step 3, got %q", reply)
	}

	// Past the last step: completion message, session deleted.
	reply, err = eng.Advance(ctx, "user-1")
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if reply != persona.LineWalkthroughDone() {
		t.Errorf("expected completion line, got %q", reply)
	}
	if _, err := store.Get(ctx, "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected session deleted, got err=%v", err)
	}
}

func TestAdvanceWithoutSession(t *testing.T) {
	eng, _, ctx := setupEngine(t)

	if _, err := eng.Advance(ctx, "user-1"); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestCustomMarker(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	eng := New(store, log, WithMarker("手順"))
	ctx := context.Background()

	reply, err := eng.Start(ctx, "user-1", "intro 手順1 boil 手順2 serve")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(reply, "手順1 boil") {
		t.Errorf("expected first step with custom marker, got %q", reply)
	}
}
