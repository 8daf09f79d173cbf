// Package cached provides a caching wrapper over a primary paste repository using Redis.
package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/metrics"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

func keyPaste(id string) string { return "pastecache:" + id }

// PasteRepository is a cache-aside repository combining Redis with a primary store.
// Pastes are immutable, so cached entries never need invalidation; they only
// need to disappear no later than the paste itself.
type PasteRepository struct {
	primary repository.PasteRepository
	redis   *redis.Client
	ttl     time.Duration
	now     func() time.Time
}

// NewPasteRepository creates a new cached repository.
func NewPasteRepository(primary repository.PasteRepository, redis *redis.Client, ttl time.Duration) *PasteRepository {
	return &PasteRepository{primary: primary, redis: redis, ttl: ttl, now: time.Now}
}

// expiry returns the cache lifetime for p: the configured ttl, capped at the
// paste's remaining lifetime. Zero means do not cache.
func (r *PasteRepository) expiry(p domain.Paste) time.Duration {
	until := p.ExpiresAt.Sub(r.now())
	if until <= 0 {
		return 0
	}
	if r.ttl > 0 && r.ttl < until {
		return r.ttl
	}
	return until
}

func (r *PasteRepository) store(ctx context.Context, p domain.Paste) {
	exp := r.expiry(p)
	if exp == 0 {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, keyPaste(p.ID), data, exp).Err(); err != nil {
		logger.WithField(ctx, "error", err.Error()).Warn("paste cache write failed")
	}
}

// Insert writes through to primary and populates cache.
func (r *PasteRepository) Insert(ctx context.Context, p domain.Paste) error {
	if err := r.primary.Insert(ctx, p); err != nil {
		return err
	}
	r.store(ctx, p)
	return nil
}

// FindByID attempts Redis then falls back to primary. Cache failures are
// treated as misses.
func (r *PasteRepository) FindByID(ctx context.Context, id string) (domain.Paste, error) {
	val, err := r.redis.Get(ctx, keyPaste(id)).Bytes()
	if err == nil {
		var p domain.Paste
		if jsonErr := json.Unmarshal(val, &p); jsonErr == nil {
			metrics.CacheHits.Inc()
			return p, nil
		}
	}
	metrics.CacheMisses.Inc()
	p, err := r.primary.FindByID(ctx, id)
	if err != nil {
		return domain.Paste{}, err
	}
	r.store(ctx, p)
	return p, nil
}

// DeleteExpired delegates to the primary store when it needs explicit purging.
// Cache entries expire on their own.
func (r *PasteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if purger, ok := r.primary.(repository.ExpiredPurger); ok {
		return purger.DeleteExpired(ctx, now)
	}
	return 0, nil
}

var (
	_ repository.PasteRepository = (*PasteRepository)(nil)
	_ repository.ExpiredPurger   = (*PasteRepository)(nil)
)
