// Package postgres provides a Postgres-backed implementation of the paste repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// uniqueViolation is the SQLSTATE Postgres reports for a primary key clash.
const uniqueViolation = "23505"

// purgeBatchSize bounds how many rows one purge statement deletes.
const purgeBatchSize = 500

// PasteRepository implements repository.PasteRepository using Postgres.
type PasteRepository struct {
	pool *pgxpool.Pool
}

// NewPasteRepository creates a new Postgres-backed paste repository.
func NewPasteRepository(pool *pgxpool.Pool) *PasteRepository {
	return &PasteRepository{pool: pool}
}

// EnsureSchema creates required tables if they don't exist.
func (r *PasteRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS pastes (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pastes_expires_at ON pastes (expires_at);
`
	_, err := r.pool.Exec(ctx, schema)
	if err != nil {
		return err
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

// Insert adds a new paste. A taken identifier yields repository.ErrDuplicateID.
func (r *PasteRepository) Insert(ctx context.Context, p domain.Paste) error {
	const q = `
INSERT INTO pastes (id, content, created_at, expires_at)
VALUES ($1, $2, $3, $4)
`
	_, err := r.pool.Exec(ctx, q, p.ID, p.Content, p.CreatedAt, p.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert paste: %w", err)
	}
	return nil
}

// FindByID retrieves a paste by its identifier, expired or not.
func (r *PasteRepository) FindByID(ctx context.Context, id string) (domain.Paste, error) {
	const q = `
SELECT id, content, created_at, expires_at
FROM pastes
WHERE id = $1
`
	var p domain.Paste
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Content, &p.CreatedAt, &p.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Paste{}, repository.ErrNotFound
		}
		return domain.Paste{}, fmt.Errorf("query paste: %w", err)
	}
	return p, nil
}

// DeleteExpired removes pastes whose expires_at is at or before now, in batches.
func (r *PasteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `
DELETE FROM pastes
WHERE id IN (
    SELECT id FROM pastes WHERE expires_at <= $1 LIMIT $2
)
`
	var total int64
	for {
		ct, err := r.pool.Exec(ctx, q, now, purgeBatchSize)
		if err != nil {
			return total, fmt.Errorf("delete expired pastes: %w", err)
		}
		total += ct.RowsAffected()
		if ct.RowsAffected() < purgeBatchSize {
			return total, nil
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}

var (
	_ repository.PasteRepository = (*PasteRepository)(nil)
	_ repository.ExpiredPurger   = (*PasteRepository)(nil)
)
