// Package repository defines the persistence contract for pastes.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/roguepikachu/pastebin/internal/domain"
)

var (
	// ErrNotFound is returned when no record exists for an identifier.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned by Insert when the identifier is already taken.
	ErrDuplicateID = errors.New("duplicate paste id")
)

// PasteRepository persists and looks up pastes by identifier.
// FindByID does not filter expired records; that is the caller's job.
type PasteRepository interface {
	Insert(ctx context.Context, p domain.Paste) error
	FindByID(ctx context.Context, id string) (domain.Paste, error)
}

// ExpiredPurger is implemented by stores that need an explicit purge of
// records whose ExpiresAt is at or before now.
type ExpiredPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
