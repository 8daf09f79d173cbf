package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/repository"
)

func newTestRepo(t *testing.T) (*PasteRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rcli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewPasteRepository(rcli), mr
}

func TestRedisRepository_Roundtrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	now := time.Now().UTC()
	p := domain.Paste{ID: "abcd1234", Content: "hello world", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.FindByID(ctx, "abcd1234")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Content != "hello world" || !got.CreatedAt.Equal(now) {
		t.Fatalf("mismatch: %+v", got)
	}
	ttl := mr.TTL(KeyPaste("abcd1234"))
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("key ttl should follow expiresAt, got %s", ttl)
	}
}

func TestRedisRepository_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	now := time.Now()
	p := domain.Paste{ID: "dup", Content: "first", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	p.Content = "second"
	if err := repo.Insert(ctx, p); !errors.Is(err, repository.ErrDuplicateID) {
		t.Fatalf("want ErrDuplicateID, got %v", err)
	}
	got, _ := repo.FindByID(ctx, "dup")
	if got.Content != "first" {
		t.Fatalf("original overwritten: %q", got.Content)
	}
}

func TestRedisRepository_NativeExpiry(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)
	now := time.Now()
	p := domain.Paste{ID: "short", Content: "x", CreatedAt: now, ExpiresAt: now.Add(30 * time.Minute)}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	mr.FastForward(31 * time.Minute)
	if _, err := repo.FindByID(ctx, "short"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound after expiry, got %v", err)
	}
}

func TestRedisRepository_AlreadyExpired(t *testing.T) {
	repo, _ := newTestRepo(t)
	now := time.Now()
	err := repo.Insert(context.Background(), domain.Paste{ID: "late", ExpiresAt: now.Add(-time.Second)})
	if !errors.Is(err, ErrAlreadyExpired) {
		t.Fatalf("want ErrAlreadyExpired, got %v", err)
	}
}

func TestRedisRepository_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.FindByID(context.Background(), "zzzzzzzz"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRedisRepository_ConnectionError(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()
	_, err := repo.FindByID(context.Background(), "abc")
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want transport error, got %v", err)
	}
}
