package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-accounts/internal/jwt"
	"github.com/sbilibin2017/user-accounts/internal/logger"
)

const (
	msgUnauthenticated = "Unauthenticated"
	msgTokenExpired    = "Bearer token has expired"
)

// Tokener defines the token operations auth-gated handlers need.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// authenticate extracts and verifies the bearer access token. On failure it
// writes the error response itself and returns ok=false: a missing or
// invalid token is a 401, an expired one a 400 with its own message.
func authenticate(w http.ResponseWriter, r *http.Request, tokener Tokener) (*jwt.Claims, bool) {
	ctx := r.Context()

	tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Errorw("authorization failed", "err", err)
		writeJSON(w, http.StatusUnauthorized, msgUnauthenticated, nil)
		return nil, false
	}

	claims, err := tokener.GetClaims(ctx, tokenStr)
	if err != nil {
		logger.Log.Errorw("authorization failed", "err", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			writeJSON(w, http.StatusBadRequest, msgTokenExpired, nil)
		} else {
			writeJSON(w, http.StatusUnauthorized, msgUnauthenticated, nil)
		}
		return nil, false
	}

	return claims, true
}
