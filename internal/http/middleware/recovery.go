package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/roguepikachu/pastebin/pkg"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

// Recovery recovers from panics in paste handlers, logs them with the
// request route, and answers 500 in the API's error body shape.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				// the panic value and stack go to the log only, never to the client
				logger.With(c.Request.Context(), map[string]any{
					"panic":  r,
					"method": c.Request.Method,
					"route":  c.FullPath(),
					"stack":  string(debug.Stack()),
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.ErrorBody{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}
