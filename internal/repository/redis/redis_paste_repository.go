// Package redis provides a Redis-backed implementation of the paste repository.
// Keys carry the paste's remaining lifetime, so Redis expires them natively.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/repository"
)

// ErrAlreadyExpired is returned when asked to store a paste whose lifetime has passed.
var ErrAlreadyExpired = errors.New("paste already expired")

// KeyPaste returns the Redis key for a paste identifier.
func KeyPaste(id string) string { return "paste:" + id }

// PasteRepository implements repository.PasteRepository using Redis as backend.
type PasteRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewPasteRepository creates a new Redis-backed paste repository.
func NewPasteRepository(client *redis.Client) *PasteRepository {
	return &PasteRepository{client: client, now: time.Now}
}

// Insert stores the paste with SETNX so an existing identifier is never overwritten.
func (r *PasteRepository) Insert(ctx context.Context, p domain.Paste) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	expiry := p.ExpiresAt.Sub(r.now())
	if expiry <= 0 {
		return ErrAlreadyExpired
	}
	ok, err := r.client.SetNX(ctx, KeyPaste(p.ID), data, expiry).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return repository.ErrDuplicateID
	}
	return nil
}

// FindByID retrieves a paste by its identifier from Redis.
func (r *PasteRepository) FindByID(ctx context.Context, id string) (domain.Paste, error) {
	val, err := r.client.Get(ctx, KeyPaste(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Paste{}, repository.ErrNotFound
		}
		return domain.Paste{}, fmt.Errorf("redis get: %w", err)
	}
	var p domain.Paste
	if err := json.Unmarshal(val, &p); err != nil {
		return domain.Paste{}, fmt.Errorf("unmarshal: %w", err)
	}
	return p, nil
}

var _ repository.PasteRepository = (*PasteRepository)(nil)
