package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
)

func newStore(t *testing.T) (*MemoryStore, context.Context) {
	t.Helper()
	return NewMemoryStore(logger.New(logger.LevelOff, nil)), context.Background()
}

func walkthrough(userID string, updatedAt time.Time) *domain.Session {
	return &domain.Session{
		UserID:    userID,
		Mode:      domain.ModeWalkthrough,
		Steps:     []string{"intro ", "1 chop ", "2 fry"},
		StepIndex: 1,
		UpdatedAt: updatedAt,
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	store, ctx := newStore(t)

	sess := walkthrough("user-1", time.Now())
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	loaded, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.StepIndex != 1 || !loaded.Active() {
		t.Fatalf("unexpected session: %+v", loaded)
	}

	if _, err := store.Get(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Put replaces.
	sess2 := walkthrough("user-1", time.Now())
	sess2.StepIndex = 2
	if err := store.Put(ctx, sess2); err != nil {
		t.Fatalf("put replace: %v", err)
	}
	loaded, _ = store.Get(ctx, "user-1")
	if loaded.StepIndex != 2 {
		t.Fatalf("expected replaced session, got step %d", loaded.StepIndex)
	}

	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent session is a no-op, not an error.
	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	store, ctx := newStore(t)

	// Update on an absent key sees nil; returning nil stays absent.
	err := store.Update(ctx, "user-1", func(s *domain.Session) *domain.Session {
		if s != nil {
			t.Errorf("expected nil session, got %+v", s)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update absent: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, len=%d", store.Len())
	}

	// Update can create.
	store.Update(ctx, "user-1", func(*domain.Session) *domain.Session {
		return walkthrough("user-1", time.Now())
	})
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, len=%d", store.Len())
	}

	// Update can mutate in place.
	store.Update(ctx, "user-1", func(s *domain.Session) *domain.Session {
		s.StepIndex++
		return s
	})
	loaded, _ := store.Get(ctx, "user-1")
	if loaded.StepIndex != 2 {
		t.Fatalf("expected step 2, got %d", loaded.StepIndex)
	}

	// Returning nil deletes.
	store.Update(ctx, "user-1", func(*domain.Session) *domain.Session { return nil })
	if _, err := store.Get(ctx, "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreEvict(t *testing.T) {
	store, ctx := newStore(t)
	now := time.Now()

	store.Put(ctx, walkthrough("stale-1", now.Add(-2*time.Hour)))
	store.Put(ctx, walkthrough("stale-2", now.Add(-90*time.Minute)))
	store.Put(ctx, walkthrough("fresh", now))

	evicted, err := store.Evict(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("evict: %v", err)
	}
	if evicted != 2 {
		t.Fatalf("expected 2 evicted, got %d", evicted)
	}
	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Fatalf("fresh session should survive: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining, len=%d", store.Len())
	}
}
