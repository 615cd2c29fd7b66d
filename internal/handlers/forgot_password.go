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

// PasswordResetter defines the interface that the service must implement.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, userID int64, newPassword string) (*models.UserDB, error)
}

// ForgotPasswordRequest represents the JSON body for a password reset
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// New password, at least 5 characters
	// required: true
	// default: secret456
	NewPassword string `json:"newPassword"`
}

// NewForgotPasswordHandler returns an HTTP handler for resetting a user's
// password. The token's subject must match the id path parameter.
// @Summary Reset own password
// @Description Hashes and stores a new password for the user identified by the path id. Only the token's own user may be reset.
// @Tags auth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Password reset request"
// @Success 200 {object} handlers.Response "Reset password is successfully"
// @Failure 400 {object} handlers.Response "Validation failure"
// @Failure 401 {object} handlers.Response "Token subject does not match path id"
// @Router /api/forgotpassword/{id} [put]
// @Security BearerAuth
func NewForgotPasswordHandler(svc PasswordResetter, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		var req ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		if violations := validation.ValidateForgotPassword(req.Email, req.NewPassword); len(violations) > 0 {
			writeJSON(w, http.StatusBadRequest, violations, violations)
			return
		}

		pathID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid user id", nil)
			return
		}

		if claims.UserID != pathID {
			writeJSON(w, http.StatusUnauthorized, msgUnauthenticated, nil)
			return
		}

		user, err := svc.ResetPassword(r.Context(), pathID, req.NewPassword)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeJSON(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			return
		}

		writeJSON(w, http.StatusOK, "Reset password is successfully", ProfileData{
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
