// Package service contains the paste lifecycle: creation, lookup and expiry.
package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/idgen"
	"github.com/roguepikachu/pastebin/internal/metrics"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// Defaults applied when no option overrides them.
const (
	DefaultTTL              = 24 * time.Hour
	DefaultMaxContentLength = 100000
	DefaultMaxIDAttempts    = 5
)

// Service provides paste-related business logic.
type Service struct {
	repo        repository.PasteRepository
	clock       Clock
	newID       func() (string, error)
	ttl         time.Duration
	maxLen      int
	maxAttempts int
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(f func() (string, error)) Option {
	return func(s *Service) { s.newID = f }
}

// WithTTL sets how long new pastes stay live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxContentLength sets the character limit for paste content. Characters
// are UTF-16 code units, so a character outside the Basic Multilingual Plane
// counts as two.
func WithMaxContentLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLen = n
		}
	}
}

// WithMaxIDAttempts bounds generate-and-insert attempts on identifier collisions.
func WithMaxIDAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// NewService creates a Service with default limits and an 8-character generator.
func NewService(repo repository.PasteRepository, clock Clock, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		clock:       clock,
		newID:       idgen.New(idgen.DefaultLength).Generate,
		ttl:         DefaultTTL,
		maxLen:      DefaultMaxContentLength,
		maxAttempts: DefaultMaxIDAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxContentLength returns the configured character limit.
func (s *Service) MaxContentLength() int { return s.maxLen }

// contentLength counts content in UTF-16 code units.
func contentLength(content string) int {
	n := 0
	for _, r := range content {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func (s *Service) validate(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Reason: ReasonEmpty}
	}
	if contentLength(content) > s.maxLen {
		return &ValidationError{Reason: ReasonTooLarge, Max: s.maxLen}
	}
	return nil
}

// CreatePaste validates content, stores it under a fresh identifier and
// returns the stored record. Identifier collisions are retried up to the
// configured bound; other store failures are returned as *PersistenceError.
func (s *Service) CreatePaste(ctx context.Context, content string) (domain.Paste, error) {
	if err := s.validate(content); err != nil {
		return domain.Paste{}, err
	}
	now := s.clock.Now()
	p := domain.Paste{
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return domain.Paste{}, &PersistenceError{Op: "generate id", Err: err}
		}
		p.ID = id
		err = s.repo.Insert(ctx, p)
		if err == nil {
			metrics.PastesCreated.Inc()
			return p, nil
		}
		if !errors.Is(err, repository.ErrDuplicateID) {
			return domain.Paste{}, &PersistenceError{Op: "insert", Err: err}
		}
		metrics.IDCollisions.Inc()
		logger.With(ctx, map[string]any{"pasteId": id, "attempt": attempt}).Warn("paste id collision, regenerating")
	}
	return domain.Paste{}, &PersistenceError{Op: "insert", Err: ErrIDExhausted}
}

// GetPaste returns a live paste. Unknown and expired identifiers both yield
// ErrPasteNotFound.
func (s *Service) GetPaste(ctx context.Context, id string) (domain.Paste, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Paste{}, ErrPasteNotFound
		}
		return domain.Paste{}, &PersistenceError{Op: "find", Err: err}
	}
	if !p.IsLive(s.clock.Now()) {
		return domain.Paste{}, ErrPasteNotFound
	}
	metrics.PastesRetrieved.Inc()
	return p, nil
}
