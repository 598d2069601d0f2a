// Package http provides the HTTP handlers for the user API: registration,
// login, lookup and deletion.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/httputil"
	"github.com/userhub/userhub/internal/user/http/dto"
	"github.com/userhub/userhub/internal/user/usecase"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	useCase usecase.UseCase
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(useCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterHandler creates a new user.
// POST /v1/users - Returns 201 Created with the user representation.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationError(c, err, h.logger)
		return
	}

	r := h.useCase.Register(c.Request.Context(), usecase.RegisterInput{
		UserName: req.UserName,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if r.IsFailure() {
		httputil.HandleResultError(c, r.Err(), h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(r.Value()))
}

// LoginHandler authenticates a credential pair.
// POST /v1/login - Returns 200 OK with an access token.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationError(c, err, h.logger)
		return
	}

	r := h.useCase.Login(c.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if r.IsFailure() {
		httputil.HandleResultError(c, r.Err(), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: r.Value()})
}

// QueryHandler looks users up by id, user name or email query parameters,
// or lists all users when no filter is given.
// GET /v1/users - Returns 200 OK with the matching users.
func (h *UserHandler) QueryHandler(c *gin.Context) {
	var input usecase.QueryInput

	if idStr := c.Query("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httputil.HandleBadRequest(c, err, h.logger)
			return
		}
		input.ID = &id
	}
	input.UserName = c.Query("user_name")
	input.Email = c.Query("email")

	r := h.useCase.Query(c.Request.Context(), input)
	if r.IsFailure() {
		httputil.HandleResultError(c, r.Err(), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(r.Value()))
}

// DeleteHandler soft deletes a user by id.
// DELETE /v1/users/:id - Returns 204 No Content.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	r := h.useCase.Delete(c.Request.Context(), id)
	if r.IsFailure() {
		httputil.HandleResultError(c, r.Err(), h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
