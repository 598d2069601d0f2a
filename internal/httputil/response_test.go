package httputil_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/httputil"
	"github.com/userhub/userhub/internal/result"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		errType  result.ErrorType
		expected int
	}{
		{name: "validation", errType: result.TypeValidation, expected: http.StatusUnprocessableEntity},
		{name: "conflict", errType: result.TypeConflict, expected: http.StatusConflict},
		{name: "not_found", errType: result.TypeNotFound, expected: http.StatusNotFound},
		{name: "unauthorized", errType: result.TypeUnauthorized, expected: http.StatusUnauthorized},
		{name: "forbidden", errType: result.TypeForbidden, expected: http.StatusForbidden},
		{name: "gone", errType: result.TypeGone, expected: http.StatusGone},
		{name: "no_content", errType: result.TypeNoContent, expected: http.StatusNoContent},
		{name: "bad_request", errType: result.TypeBadRequest, expected: http.StatusBadRequest},
		{name: "unexpected", errType: result.TypeUnexpected, expected: http.StatusInternalServerError},
		{name: "failure", errType: result.TypeFailure, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, httputil.StatusCode(tt.errType))
		})
	}
}

func TestHandleResultError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.DiscardHandler)

	t.Run("Success_TypedErrorKeepsCodeAndMessage", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		httputil.HandleResultError(c, result.Conflict("User.UserNameOrEmailAlreadyInUse", "the user name or email is already in use"), logger)

		assert.Equal(t, http.StatusConflict, w.Code)

		var body httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "conflict", body.Error)
		assert.Equal(t, "User.UserNameOrEmailAlreadyInUse", body.Code)
		assert.Equal(t, "the user name or email is already in use", body.Message)
	})

	t.Run("Success_UnexpectedErrorIsMasked", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		httputil.HandleResultError(c, result.Unexpected("Error.Unexpected", "pq: connection refused"), logger)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "internal_error", body.Error)
		assert.NotContains(t, body.Message, "connection refused")
	})
}

func TestHandleBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httputil.HandleBadRequest(c, errors.New("invalid JSON body"), slog.New(slog.DiscardHandler))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
