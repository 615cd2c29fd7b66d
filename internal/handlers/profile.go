package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/sbilibin2017/user-accounts/internal/services"
)

// ProfileGetter defines the interface that the service must implement.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserDB, error)
}

// NewGetProfileHandler returns an HTTP handler for fetching the
// authenticated user's profile.
// @Summary Get own profile
// @Description Returns the profile of the user identified by the bearer token.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.Response "Authenticated"
// @Failure 400 {object} handlers.Response "Expired bearer token"
// @Failure 401 {object} handlers.Response "Missing or invalid bearer token"
// @Router /api/getprofile [get]
// @Security BearerAuth
func NewGetProfileHandler(svc ProfileGetter, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		user, err := svc.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeJSON(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			return
		}

		writeJSON(w, http.StatusOK, "Authenticated", ProfileData{
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
