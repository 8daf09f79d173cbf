package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/repository/fake"
)

func TestPurger_RunOnce(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := fake.NewPasteRepository(fake.WithItems(
		domain.Paste{ID: "live", ExpiresAt: now.Add(time.Hour)},
		domain.Paste{ID: "gone", ExpiresAt: now.Add(-time.Hour)},
	))
	p := NewPurger(repo, stubClock{t: now}, time.Minute)

	n, err := p.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 purged, got %d", n)
	}
	if _, err := repo.FindByID(context.Background(), "live"); err != nil {
		t.Fatalf("live paste must survive purge: %v", err)
	}
}

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (c *countingPurger) DeleteExpired(context.Context, time.Time) (int64, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestPurger_RunTicksUntilCancelled(t *testing.T) {
	store := &countingPurger{err: errors.New("db down")}
	p := NewPurger(store, RealClock{}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for store.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("purger did not tick, calls=%d", store.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("purger did not stop after cancel")
	}
}

func TestPurger_Disabled(t *testing.T) {
	store := &countingPurger{}
	p := NewPurger(store, RealClock{}, 0)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("disabled run: %v", err)
	}
	if store.calls.Load() != 0 {
		t.Fatalf("disabled purger must not call the store")
	}
}
