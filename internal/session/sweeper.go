package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically expires idle sessions.
type Sweeper struct {
	cron    *cron.Cron
	store   *Store
	maxIdle time.Duration
	log     *slog.Logger
}

// NewSweeper creates a Sweeper that removes sessions idle for longer than
// maxIdle, checking every interval.
func NewSweeper(
	store *Store,
	interval time.Duration,
	maxIdle time.Duration,
	log *slog.Logger,
) (*Sweeper, error) {
	c := cron.New()

	s := &Sweeper{
		cron:    c,
		store:   store,
		maxIdle: maxIdle,
		log:     log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runSweep); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled sweeps.
func (s *Sweeper) Start() {
	s.log.Info("session sweeper started", "max_idle", s.maxIdle)
	s.cron.Start()
}

// Stop stops the sweeper, waiting for a running sweep to finish.
func (s *Sweeper) Stop() context.Context {
	s.log.Info("session sweeper stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Sweeper) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Sweeper) runSweep() {
	removed := s.store.Sweep(s.maxIdle)
	if removed > 0 {
		s.log.Info("expired idle sessions", "removed", removed, "remaining", s.store.Len())
	}
}
