package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roguepikachu/pastebin/pkg/ctxutil"
)

func TestRequestIDMiddleware_SetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/health_check", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health_check", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if got := w.Header().Get(headerRequestID); got == "" {
		t.Fatalf("%s header should be set", headerRequestID)
	}
	if got := w.Header().Get(headerClientID); got == "" {
		t.Fatalf("%s header should be set", headerClientID)
	}
}

func TestRequestIDMiddleware_PropagatesProvided(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var ctxRequestID, ctxClientID string
	r.GET("/api/paste/:pasteId", func(c *gin.Context) {
		ctxRequestID = ctxutil.RequestID(c.Request.Context())
		ctxClientID = ctxutil.ClientID(c.Request.Context())
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/paste/abc", nil)
	req.Header.Set("X-Request-ID", "rid-xyz")
	req.Header.Set("X-Client-ID", "cid-xyz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(headerRequestID) != "rid-xyz" || w.Header().Get(headerClientID) != "cid-xyz" {
		t.Fatalf("did not propagate provided headers: %s %s", w.Header().Get(headerRequestID), w.Header().Get(headerClientID))
	}
	if ctxRequestID != "rid-xyz" || ctxClientID != "cid-xyz" {
		t.Fatalf("context values mismatch: %q %q", ctxRequestID, ctxClientID)
	}
}

func TestRequestIDMiddleware_GeneratesUniqueIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	var mu sync.Mutex
	ids := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			mu.Lock()
			defer mu.Unlock()
			ids[w.Header().Get(headerRequestID)] = true
		}()
	}
	wg.Wait()
	if len(ids) != 20 {
		t.Fatalf("want 20 distinct request ids, got %d", len(ids))
	}
}

func TestRequestIDMiddleware_OnlyRequestIDProvided(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "only-rid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(headerRequestID) != "only-rid" {
		t.Fatalf("request id not propagated")
	}
	if w.Header().Get(headerClientID) == "" {
		t.Fatalf("client id should be generated")
	}
}
