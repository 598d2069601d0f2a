package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/userhub/userhub/internal/httputil"
	"github.com/userhub/userhub/internal/requestctx"
	"github.com/userhub/userhub/internal/result"
	"github.com/userhub/userhub/internal/user/service"
)

// TokenParser validates a signed access token and returns its claims.
type TokenParser interface {
	Parse(signed string) (*service.AccessTokenClaims, error)
}

// ErrInvalidAccessToken is returned for missing, malformed or rejected
// bearer tokens. A single error for every case keeps the response from
// revealing which check failed.
var ErrInvalidAccessToken = result.Unauthorized("Auth.InvalidAccessToken", "the access token is missing or invalid")

// AuthMiddleware authenticates the request through a Bearer token in the
// Authorization header (case-insensitive "bearer") and records the token's
// user name as the acting user on the request context. Handlers behind it
// can rely on requestctx.ActingUser.
func AuthMiddleware(tokens TokenParser, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleResultError(c, ErrInvalidAccessToken, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleResultError(c, ErrInvalidAccessToken, logger)
			c.Abort()
			return
		}

		signed := authHeader[len(bearerPrefix):]
		if signed == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleResultError(c, ErrInvalidAccessToken, logger)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(signed)
		if err != nil {
			logger.Debug("authentication failed: invalid access token",
				slog.String("error", err.Error()))
			httputil.HandleResultError(c, ErrInvalidAccessToken, logger)
			c.Abort()
			return
		}
		if claims.UserName == "" {
			logger.Debug("authentication failed: token carries no user name")
			httputil.HandleResultError(c, ErrInvalidAccessToken, logger)
			c.Abort()
			return
		}

		ctx := requestctx.WithActingUser(c.Request.Context(), claims.UserName)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
