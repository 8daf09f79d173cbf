package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roguepikachu/pastebin/internal/metrics"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/pkg/ctxutil"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// Purger periodically removes expired pastes from stores without native expiry.
// Reads never depend on it: GetPaste already hides expired records.
type Purger struct {
	store    repository.ExpiredPurger
	clock    Clock
	interval time.Duration
}

// NewPurger creates a Purger running every interval.
func NewPurger(store repository.ExpiredPurger, clock Clock, interval time.Duration) *Purger {
	return &Purger{store: store, clock: clock, interval: interval}
}

// RunOnce performs a single purge pass and returns how many records it removed.
func (p *Purger) RunOnce(ctx context.Context) (int64, error) {
	metrics.PurgeCycles.Inc()
	n, err := p.store.DeleteExpired(ctx, p.clock.Now())
	if err != nil {
		return n, err
	}
	metrics.PastesPurged.Add(float64(n))
	return n, nil
}

// Run purges on every tick until ctx is cancelled. A non-positive interval
// disables the worker and Run returns immediately.
func (p *Purger) Run(ctx context.Context) error {
	if p.interval <= 0 {
		logger.Info(ctx, "purge worker disabled")
		return nil
	}
	ctx = ctxutil.WithRequestID(ctx, uuid.New().String())
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	logger.WithField(ctx, "interval", p.interval.String()).Info("purge worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "purge worker shutting down")
			return nil
		case <-ticker.C:
			n, err := p.RunOnce(ctx)
			if err != nil {
				logger.WithField(ctx, "error", err.Error()).Error("purge failed")
				continue
			}
			if n > 0 {
				logger.WithField(ctx, "deleted", n).Info("purge completed")
			}
		}
	}
}
