// Package storage provides session persistence implementations and the
// background eviction janitor.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory session store keyed by user ID. Safe for
// concurrent access; Update holds the write lock across the whole
// read-modify-write so concurrent walkthrough advances cannot be lost.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		log:      log,
	}
}

// Get retrieves the session for a user.
func (s *MemoryStore) Get(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// Put persists a session, replacing any existing one for the same user.
func (s *MemoryStore) Put(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving session for user %s (mode=%s, step=%d/%d)",
		session.UserID, session.Mode, session.StepIndex, len(session.Steps))
	s.sessions[session.UserID] = session
	return nil
}

// Delete removes the user's session. Absent sessions are a no-op.
func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		s.log.Debug("deleted session for user %s", userID)
	}
	return nil
}

// Update applies fn to the user's current session (nil if absent) under the
// write lock. fn's return value replaces the session; nil deletes it.
func (s *MemoryStore) Update(ctx context.Context, userID string, fn func(*domain.Session) *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.sessions[userID])
	if next == nil {
		delete(s.sessions, userID)
		return nil
	}
	s.sessions[userID] = next
	return nil
}

// Evict removes sessions that have not been touched since idleBefore.
func (s *MemoryStore) Evict(ctx context.Context, idleBefore time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.UpdatedAt.Before(idleBefore) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Info("evicted %d idle session(s)", evicted)
	}
	return evicted, nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
