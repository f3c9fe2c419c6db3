// Package sweeper periodically removes expired entries from the token
// deny-list.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
	"github.com/saloonbook/saloon-server/internal/model"
)

type Sweeper struct {
	store    model.RevokedTokenStore
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

func New(store model.RevokedTokenStore, interval time.Duration, metrics *metrics.Metrics, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Sweeper: started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Warn("Sweeper: sweep failed", "error", err.Error())
			}
		}
	}
}

// Sweep removes every entry whose token has expired and returns how many
// were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	if n > 0 {
		s.logger.Debug("Sweeper: removed expired tokens", "count", n)
	}
	s.metrics.RevokedTokensSwept(n)
	return n, nil
}
