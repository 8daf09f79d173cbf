package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roguepikachu/pastebin/pkg"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// HealthCheck is the static liveness probe. It never touches the store.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.MessageBody{Message: "Server is healthy"})
}

// Pinger is anything that can report whether a downstream dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type namedPinger struct {
	name string
	p    Pinger
}

// HealthHandler provides liveness and readiness probes checking downstream deps.
type HealthHandler struct {
	deps        []namedPinger
	pingTimeout time.Duration
}

// HealthOption registers a dependency with the readiness probe.
type HealthOption func(*HealthHandler)

// WithPostgres checks the pool on readiness. A nil pool is ignored.
func WithPostgres(pool *pgxpool.Pool) HealthOption {
	return func(h *HealthHandler) {
		if pool != nil {
			h.deps = append(h.deps, namedPinger{"postgres", pool})
		}
	}
}

// WithRedis checks the client on readiness. A nil client is ignored.
func WithRedis(c *redis.Client) HealthOption {
	return func(h *HealthHandler) {
		if c != nil {
			h.deps = append(h.deps, namedPinger{"redis", redisPingerAdapter{c}})
		}
	}
}

// WithMongo checks the client on readiness. A nil client is ignored.
func WithMongo(c *mongo.Client) HealthOption {
	return func(h *HealthHandler) {
		if c != nil {
			h.deps = append(h.deps, namedPinger{"mongo", mongoPingerAdapter{c}})
		}
	}
}

// WithPinger registers an arbitrary dependency under name.
func WithPinger(name string, p Pinger) HealthOption {
	return func(h *HealthHandler) { h.deps = append(h.deps, namedPinger{name, p}) }
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{pingTimeout: 1 * time.Second}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type redisPingerAdapter struct{ c *redis.Client }

func (r redisPingerAdapter) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

type mongoPingerAdapter struct{ c *mongo.Client }

func (m mongoPingerAdapter) Ping(ctx context.Context) error { return m.c.Ping(ctx, nil) }

// Liveness reports that the process is up. Do not check external deps here.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"status": "alive"}, "ok"))
}

type check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Err    string `json:"error,omitempty"`
}

// Readiness checks external dependencies to decide if we can serve traffic.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	results := make([]check, 0, len(h.deps))
	ready := true
	for _, d := range h.deps {
		if err := d.p.Ping(ctx); err != nil {
			ready = false
			results = append(results, check{Name: d.name, Status: "down", Err: err.Error()})
			continue
		}
		results = append(results, check{Name: d.name, Status: "up"})
	}

	if ready {
		c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"ready": true, "checks": results}, "ready"))
		return
	}
	logger.Warn(c.Request.Context(), "readiness failed: %+v", results)
	c.JSON(http.StatusServiceUnavailable, pkg.NewResponse(http.StatusServiceUnavailable, gin.H{"ready": false, "checks": results}, "not ready"))
}
