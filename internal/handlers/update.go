package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/sbilibin2017/user-accounts/internal/services"
	"github.com/sbilibin2017/user-accounts/internal/validation"
)

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	Update(ctx context.Context, userID int64, name, email string, status bool) (*models.UserDB, error)
}

// UpdateRequest represents the JSON body for a profile update
// swagger:model UpdateRequest
type UpdateRequest struct {
	// Display name, unique, at most 50 characters
	// required: true
	// default: john_doe
	Name string `json:"name"`

	// Email, unique
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Active flag
	// required: true
	// default: true
	Status *bool `json:"status"`
}

// NewUserUpdateHandler returns an HTTP handler for updating a user's
// profile. The token's subject must match the id path parameter.
// @Summary Update own profile
// @Description Updates name, email, and status of the user identified by the path id. Only the token's own user may be updated.
// @Tags auth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param updateRequest body handlers.UpdateRequest true "Profile update request"
// @Success 200 {object} handlers.Response "Update user is successfully"
// @Failure 400 {object} handlers.Response "Validation failure or name/email already taken"
// @Failure 401 {object} handlers.Response "Token subject does not match path id"
// @Router /api/profile/{id} [put]
// @Security BearerAuth
func NewUserUpdateHandler(svc UserUpdater, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		if violations := validation.ValidateUpdate(req.Name, req.Email, req.Status); len(violations) > 0 {
			writeJSON(w, http.StatusBadRequest, violations, violations)
			return
		}

		pathID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid user id", nil)
			return
		}

		if claims.UserID != pathID {
			writeJSON(w, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}

		user, err := svc.Update(r.Context(), pathID, req.Name, req.Email, *req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists),
				errors.Is(err, services.ErrUserNotFound):
				writeJSON(w, http.StatusBadRequest, err.Error(), nil)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			}
			return
		}

		writeJSON(w, http.StatusOK, "Update user is successfully", ProfileData{
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
