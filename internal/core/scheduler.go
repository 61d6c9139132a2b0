package core

// scheduler.go reaps abandoned edit sessions. A browser tab that closes
// mid-edit never commits or cancels, and its session would otherwise keep the
// cell locked forever.

import (
	"context"
	"log/slog"
	"time"
)

// StartSessionSweeper periodically removes sessions idle for longer than
// the configured TTL. It blocks until ctx is cancelled.
func (s *Service) StartSessionSweeper(ctx context.Context) {
	interval := s.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ttl := s.cfg.SessionTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	slog.Info("session sweeper started", "interval", interval, "ttl", ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweepExpired(s.now(), ttl)
		}
	}
}
