package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/requestctx"
	"github.com/userhub/userhub/internal/user/service"
	"github.com/userhub/userhub/internal/user/usecase"
)

func newAuthTestRouter(tokens TokenParser) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var actor string
	router := gin.New()
	router.GET("/protected",
		AuthMiddleware(tokens, slog.New(slog.DiscardHandler)),
		func(c *gin.Context) {
			user, err := requestctx.ActingUser(c.Request.Context())
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			actor = user
			c.Status(http.StatusOK)
		},
	)
	return router, &actor
}

func mintTestToken(t *testing.T, tokens *service.JWTTokenProvider, userName string) string {
	t.Helper()

	token, err := tokens.Create(usecase.UserModel{
		ID:       uuid.Must(uuid.NewV7()),
		UserName: userName,
		Email:    "john@example.com",
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_Success(t *testing.T) {
	tokens := service.NewJWTTokenProvider("test-key", "userhub", "userhub-api", time.Hour)
	router, actor := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, tokens, "johndoe"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "johndoe", *actor)
}

func TestAuthMiddleware_Success_CaseInsensitiveScheme(t *testing.T) {
	tokens := service.NewJWTTokenProvider("test-key", "userhub", "userhub-api", time.Hour)
	router, actor := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+mintTestToken(t, tokens, "johndoe"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "johndoe", *actor)
}

func TestAuthMiddleware_Failure_RejectedRequests(t *testing.T) {
	tokens := service.NewJWTTokenProvider("test-key", "userhub", "userhub-api", time.Hour)
	otherKey := service.NewJWTTokenProvider("other-key", "userhub", "userhub-api", time.Hour)

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header", authHeader: ""},
		{name: "wrong scheme", authHeader: "Token abc"},
		{name: "empty token", authHeader: "Bearer "},
		{name: "garbage token", authHeader: "Bearer not-a-jwt"},
		{name: "wrong signing key", authHeader: "Bearer " + mintTestToken(t, otherKey, "johndoe")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, actor := newAuthTestRouter(tokens)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Auth.InvalidAccessToken")
			assert.Empty(t, *actor)
		})
	}
}

func TestAuthMiddleware_Failure_ExpiredToken(t *testing.T) {
	past := time.Now().UTC().Add(-2 * time.Hour)
	expired := service.NewJWTTokenProvider("test-key", "userhub", "userhub-api", time.Hour,
		service.WithJWTClock(func() time.Time { return past }))
	tokens := service.NewJWTTokenProvider("test-key", "userhub", "userhub-api", time.Hour)
	router, actor := newAuthTestRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, expired, "johndoe"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, *actor)
}
