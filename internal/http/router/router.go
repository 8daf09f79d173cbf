// Package router sets up the HTTP routes for the paste API server.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roguepikachu/pastebin/internal/http/handler"
	"github.com/roguepikachu/pastebin/internal/http/middleware"
	"github.com/roguepikachu/pastebin/pkg"
)

// NewRouter initializes and returns the main Gin engine with all routes.
// maxBody caps request bodies in bytes; zero disables the cap.
func NewRouter(h *handler.Handler, hh *handler.HealthHandler, maxBody int64) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(),
		middleware.CORS(),
		middleware.BodyLimit(maxBody),
	)

	router.GET(pkg.HealthCheckPath, handler.HealthCheck)
	if hh != nil {
		router.GET(pkg.LivezPath, hh.Liveness)
		router.GET(pkg.ReadyzPath, hh.Readiness)
	}
	router.GET(pkg.MetricsPath, gin.WrapH(promhttp.Handler()))

	router.POST(pkg.PastePath, h.Create)
	router.GET(pkg.PasteByIDPath, h.Get)
	return router
}
