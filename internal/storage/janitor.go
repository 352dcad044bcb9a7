package storage

import (
	"context"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
)

// JanitorOption configures the janitor.
type JanitorOption func(*Janitor)

// WithSweepInterval sets how often the janitor scans for idle sessions.
func WithSweepInterval(d time.Duration) JanitorOption {
	return func(j *Janitor) {
		j.sweepInterval = d
	}
}

// WithTTL sets how long a walkthrough may sit idle before eviction.
func WithTTL(d time.Duration) JanitorOption {
	return func(j *Janitor) {
		j.ttl = d
	}
}

// Janitor periodically evicts abandoned walkthrough sessions so the store
// does not grow forever on users who never finish a recipe.
type Janitor struct {
	store         domain.SessionStore
	log           *logger.Logger
	sweepInterval time.Duration
	ttl           time.Duration
}

// NewJanitor creates a session janitor with the given dependencies and options.
func NewJanitor(store domain.SessionStore, log *logger.Logger, opts ...JanitorOption) *Janitor {
	j := &Janitor{
		store:         store,
		log:           log,
		sweepInterval: 1 * time.Minute,
		ttl:           1 * time.Hour,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run sweeps on a fixed interval until the context is cancelled. It always
// returns nil: a failed sweep is logged and retried on the next tick.
func (j *Janitor) Run(ctx context.Context) error {
	j.log.Info("session janitor started (sweep=%s, ttl=%s)", j.sweepInterval, j.ttl)

	ticker := time.NewTicker(j.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("session janitor stopped")
			return nil
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// sweep runs one eviction cycle.
func (j *Janitor) sweep(ctx context.Context) {
	evicted, err := j.store.Evict(ctx, time.Now().Add(-j.ttl))
	if err != nil {
		j.log.Error("janitor: evicting idle sessions: %v", err)
		return
	}
	if evicted > 0 {
		j.log.Debug("janitor: swept %d session(s)", evicted)
	}
}
