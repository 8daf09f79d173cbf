package cached

import (
	"context"
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/metrics"
	"github.com/roguepikachu/pastebin/internal/repository"
)

// MaxLocalEntries bounds the in-process cache size.
const MaxLocalEntries = 100000

type localItem struct {
	paste domain.Paste
	exp   time.Time
}

// LocalPasteRepository keeps recently read pastes in an in-process LRU in
// front of a primary store. Entries never outlive the paste.
type LocalPasteRepository struct {
	primary repository.PasteRepository
	mu      sync.Mutex
	c       *lru.Cache[string, localItem]
	ttl     time.Duration
	now     func() time.Time
}

// NewLocalPasteRepository wraps primary with an LRU holding up to size entries.
func NewLocalPasteRepository(primary repository.PasteRepository, size int, ttl time.Duration) (*LocalPasteRepository, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	if size > MaxLocalEntries {
		return nil, errors.New("cache size too large")
	}
	c, err := lru.New[string, localItem](size)
	if err != nil {
		return nil, err
	}
	return &LocalPasteRepository{primary: primary, c: c, ttl: ttl, now: time.Now}, nil
}

func (r *LocalPasteRepository) put(p domain.Paste) {
	now := r.now()
	exp := p.ExpiresAt
	if r.ttl > 0 && now.Add(r.ttl).Before(exp) {
		exp = now.Add(r.ttl)
	}
	if !now.Before(exp) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.c.Add(p.ID, localItem{paste: p, exp: exp})
}

func (r *LocalPasteRepository) get(id string) (domain.Paste, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.c.Get(id)
	if !ok {
		return domain.Paste{}, false
	}
	if !r.now().Before(it.exp) {
		r.c.Remove(id)
		return domain.Paste{}, false
	}
	return it.paste, true
}

// Insert writes through to primary, then caches the paste.
func (r *LocalPasteRepository) Insert(ctx context.Context, p domain.Paste) error {
	if err := r.primary.Insert(ctx, p); err != nil {
		return err
	}
	r.put(p)
	return nil
}

// FindByID serves from the LRU when possible and fills it on a miss.
func (r *LocalPasteRepository) FindByID(ctx context.Context, id string) (domain.Paste, error) {
	if p, ok := r.get(id); ok {
		metrics.CacheHits.Inc()
		return p, nil
	}
	metrics.CacheMisses.Inc()
	p, err := r.primary.FindByID(ctx, id)
	if err != nil {
		return domain.Paste{}, err
	}
	r.put(p)
	return p, nil
}

// DeleteExpired delegates to the primary store when it needs explicit purging.
func (r *LocalPasteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if purger, ok := r.primary.(repository.ExpiredPurger); ok {
		return purger.DeleteExpired(ctx, now)
	}
	return 0, nil
}

// Len reports the number of cached entries.
func (r *LocalPasteRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.c.Len()
}

var (
	_ repository.PasteRepository = (*LocalPasteRepository)(nil)
	_ repository.ExpiredPurger   = (*LocalPasteRepository)(nil)
)
