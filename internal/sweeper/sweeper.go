package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type SessionExpirer interface {
	ExpireOldSessions(ctx context.Context) error
}

// Sweeper periodically expires stale location sessions. The sweep itself is
// idempotent, so overlapping deployments running their own sweepers are fine.
type Sweeper struct {
	sessions SessionExpirer
	interval time.Duration
}

func New(sessions SessionExpirer, interval time.Duration) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		interval: interval,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sessions.ExpireOldSessions(ctx); err != nil {
				zap.L().Error("failed to expire location sessions", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
