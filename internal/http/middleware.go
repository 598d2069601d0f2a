// Package http provides the public API server, the internal metrics server
// and the Gin middleware shared between them.
package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/requestctx"
)

// CorrelationMiddleware derives the request correlation id from the
// X-Request-Id header set by the requestid middleware and stores it on the
// request context. A header that is not a UUID gets a fresh one; every
// operation downstream sees exactly one correlation id.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if id, err := uuid.Parse(requestid.Get(c)); err == nil {
			ctx = requestctx.WithCorrelationID(ctx, id)
		} else {
			ctx = requestctx.WithCorrelationID(ctx, uuid.Must(uuid.NewV7()))
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// LoggerMiddleware logs one structured line per request.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("request_id", requestid.Get(c)),
		)
	}
}
