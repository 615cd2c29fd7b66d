package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/services"
)

// Refresher defines the interface that the service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// RefreshRequest represents the JSON body for a token refresh. The body is
// only consulted when no refreshToken cookie is present.
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token issued by login
	RefreshToken string `json:"refreshToken"`
}

// RefreshData is the payload of a successful refresh response
// swagger:model RefreshData
type RefreshData struct {
	// New access token, also set as an HTTP-only cookie
	BearerToken string `json:"bearerToken"`
}

// NewRefreshHandler returns an HTTP handler exchanging a refresh token for
// a new token pair. The exchange rotates the refresh token: the previous
// one stops being accepted.
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token (cookie or body) for a new access/refresh pair and rotates the cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest false "Refresh request, optional when the cookie is set"
// @Success 200 {object} handlers.Response "Refresh success"
// @Failure 401 {object} handlers.Response "Missing, invalid, expired, or superseded refresh token"
// @Router /api/refresh [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			token = cookie.Value
		} else {
			var req RefreshRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				token = req.RefreshToken
			}
		}

		if token == "" {
			writeJSON(w, http.StatusUnauthorized, msgUnauthenticated, nil)
			return
		}

		pair, err := svc.Refresh(r.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRefreshToken) {
				writeJSON(w, http.StatusUnauthorized, msgUnauthenticated, nil)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			return
		}

		setTokenCookies(w, pair)
		writeJSON(w, http.StatusOK, "Refresh success", RefreshData{
			BearerToken: pair.AccessToken,
		})
	}
}
