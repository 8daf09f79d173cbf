package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type fakePinger struct {
	err   error
	delay time.Duration
}

func (f fakePinger) Ping(ctx context.Context) error {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.err
}

func serve(h gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET(path, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	w := serve(HealthCheck, "/health_check")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w.Body.String() != `{"message":"Server is healthy"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestLiveness_OK(t *testing.T) {
	hh := NewHealthHandler(WithPinger("db", fakePinger{err: errors.New("down")}))
	if w := serve(hh.Liveness, "/livez"); w.Code != http.StatusOK {
		t.Fatalf("liveness must ignore deps, got %d", w.Code)
	}
}

func TestReadiness_NoDeps(t *testing.T) {
	hh := NewHealthHandler(WithPostgres(nil), WithRedis(nil), WithMongo(nil))
	if len(hh.deps) != 0 {
		t.Fatalf("nil clients must be skipped, got %d deps", len(hh.deps))
	}
	if w := serve(hh.Readiness, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestReadiness_AllUp(t *testing.T) {
	hh := NewHealthHandler(WithPinger("mongo", fakePinger{}), WithPinger("redis", fakePinger{}))
	if w := serve(hh.Readiness, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestReadiness_FailDeps(t *testing.T) {
	hh := NewHealthHandler(WithPinger("mongo", fakePinger{}), WithPinger("redis", fakePinger{err: errors.New("redis down")}))
	w := serve(hh.Readiness, "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", w.Code)
	}
	var body struct {
		Data struct {
			Ready  bool    `json:"ready"`
			Checks []check `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Ready || len(body.Data.Checks) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Data.Checks[1].Status != "down" || body.Data.Checks[1].Err != "redis down" {
		t.Fatalf("redis check wrong: %+v", body.Data.Checks[1])
	}
}

func TestReadiness_Timeout(t *testing.T) {
	hh := NewHealthHandler(WithPinger("slow", fakePinger{delay: time.Second}))
	hh.pingTimeout = 20 * time.Millisecond
	start := time.Now()
	w := serve(hh.Readiness, "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", w.Code)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("readiness ignored ping timeout")
	}
}

func TestReadiness_RedisAdapter(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	rcli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rcli.Close()

	hh := NewHealthHandler(WithRedis(rcli))
	if w := serve(hh.Readiness, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("want 200 with live redis, got %d", w.Code)
	}
}
