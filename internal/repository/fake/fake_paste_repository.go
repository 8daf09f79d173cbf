// Package fake provides an in-memory paste repository. It backs the memory
// store and doubles as the repository used in unit tests.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/repository"
)

// PasteRepository is an in-memory implementation of repository.PasteRepository.
// It is safe for concurrent use.
type PasteRepository struct {
	mu        sync.RWMutex
	byID      map[string]domain.Paste
	insertErr func(domain.Paste) error
}

// Option configures the fake repository.
type Option func(*PasteRepository)

// WithItems seeds the repository with the provided pastes (by ID).
func WithItems(items ...domain.Paste) Option {
	return func(r *PasteRepository) {
		for _, p := range items {
			r.byID[p.ID] = p
		}
	}
}

// WithInsertError makes Insert consult f before storing; a non-nil result is
// returned and nothing is stored.
func WithInsertError(f func(domain.Paste) error) Option {
	return func(r *PasteRepository) { r.insertErr = f }
}

// NewPasteRepository creates a new in-memory repository.
func NewPasteRepository(opts ...Option) *PasteRepository {
	r := &PasteRepository{byID: make(map[string]domain.Paste)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PasteRepository) Insert(_ context.Context, p domain.Paste) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		if err := r.insertErr(p); err != nil {
			return err
		}
	}
	if _, taken := r.byID[p.ID]; taken {
		return repository.ErrDuplicateID
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PasteRepository) FindByID(_ context.Context, id string) (domain.Paste, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return domain.Paste{}, repository.ErrNotFound
}

// DeleteExpired removes every paste that is no longer live at now.
func (r *PasteRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.byID {
		if !p.IsLive(now) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

// DeleteByID removes a paste regardless of expiry. Used by tests.
func (r *PasteRepository) DeleteByID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Len returns the number of stored pastes, expired or not.
func (r *PasteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

var (
	_ repository.PasteRepository = (*PasteRepository)(nil)
	_ repository.ExpiredPurger   = (*PasteRepository)(nil)
)
