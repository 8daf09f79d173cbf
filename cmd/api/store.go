package main

import (
	"context"
	"fmt"

	"github.com/roguepikachu/pastebin/internal/config"
	"github.com/roguepikachu/pastebin/internal/data"
	"github.com/roguepikachu/pastebin/internal/http/handler"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/internal/repository/cached"
	"github.com/roguepikachu/pastebin/internal/repository/fake"
	mongorepo "github.com/roguepikachu/pastebin/internal/repository/mongo"
	pgrepo "github.com/roguepikachu/pastebin/internal/repository/postgres"
	redisrepo "github.com/roguepikachu/pastebin/internal/repository/redis"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// store bundles the selected repository with what is needed to probe and close it.
type store struct {
	repo    repository.PasteRepository
	health  []handler.HealthOption
	closers []func()
}

func (s *store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStore connects the backend named by c.StoreBackend and prepares its schema.
func openStore(ctx context.Context, c config.Config) (*store, error) {
	s := &store{}
	switch c.StoreBackend {
	case config.BackendMemory:
		s.repo = fake.NewPasteRepository()

	case config.BackendRedis:
		rcli := data.NewRedisClient(c)
		s.closers = append(s.closers, func() { _ = rcli.Close() })
		s.health = append(s.health, handler.WithRedis(rcli))
		s.repo = redisrepo.NewPasteRepository(rcli)

	case config.BackendPostgres:
		pool, err := data.NewPostgresPool(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		s.health = append(s.health, handler.WithPostgres(pool))
		pr := pgrepo.NewPasteRepository(pool)
		if err := pr.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		s.repo = pr

	case config.BackendMongo:
		client, err := data.NewMongoClient(ctx, c)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Disconnect(context.Background()) })
		s.health = append(s.health, handler.WithMongo(client))
		mr := mongorepo.NewPasteRepository(client.Database(c.MongoDB))
		if err := mr.EnsureIndexes(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		s.repo = mr

	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	if c.CacheEnabled && (c.StoreBackend == config.BackendMongo || c.StoreBackend == config.BackendPostgres) {
		rcli := data.NewRedisClient(c)
		s.closers = append(s.closers, func() { _ = rcli.Close() })
		s.health = append(s.health, handler.WithRedis(rcli))
		s.repo = cached.NewPasteRepository(s.repo, rcli, c.CacheTTL)
		logger.WithField(ctx, "ttl", c.CacheTTL.String()).Info("paste cache enabled")
	}
	if c.LocalCacheSize > 0 && c.StoreBackend != config.BackendMemory {
		local, err := cached.NewLocalPasteRepository(s.repo, c.LocalCacheSize, c.CacheTTL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("local cache: %w", err)
		}
		s.repo = local
	}
	return s, nil
}
