package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/interfaces/http/middleware"
	"domain-agent.backend/internal/interfaces/http/response"
	"domain-agent.backend/internal/usecases"
)

// UserService is the slice of the user usecase the handler depends on
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, input *entities.DeleteAccountInput) error
	GetStats(ctx context.Context, userID uuid.UUID) (*usecases.UserStats, error)
}

// UserHandler handles account management endpoints
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the caller's account record
// GET /api/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdatePreferences updates currency and notification settings
// PUT /api/users/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UpdatePreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.users.UpdatePreferences(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteAccount deactivates the caller's account
// DELETE /api/users/account
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.DeleteAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := h.users.DeleteAccount(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "account deactivated")
}

// Stats returns the caller's dashboard summary
// GET /api/users/stats
func (h *UserHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	stats, err := h.users.GetStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
