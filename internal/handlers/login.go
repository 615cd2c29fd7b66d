package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/sbilibin2017/user-accounts/internal/services"
	"github.com/sbilibin2017/user-accounts/internal/validation"
)

// Cookie names set on login and rotated on refresh.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, *services.TokenPair, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginData is the payload of a successful login response
// swagger:model LoginData
type LoginData struct {
	// Display name
	// default: john_doe
	Name string `json:"name"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Access token, also set as an HTTP-only cookie
	BearerToken string `json:"bearerToken"`
}

// setTokenCookies mirrors the token pair into HTTP-only cookies whose
// max-ages match the token TTLs.
func setTokenCookies(w http.ResponseWriter, pair *services.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(pair.AccessTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(pair.RefreshTTL.Seconds()),
	})
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates by email and password, returns the bearer token and sets accessToken/refreshToken cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.Response "Login success"
// @Failure 400 {object} handlers.Response "Validation failure, unknown email, or wrong password"
// @Router /api/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		if violations := validation.ValidateLogin(req.Email, req.Password); len(violations) > 0 {
			writeJSON(w, http.StatusBadRequest, violations, violations)
			return
		}

		user, pair, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailNotFound):
				writeJSON(w, http.StatusBadRequest, "Email not found", map[string]string{"email": req.Email})
			case errors.Is(err, services.ErrWrongPassword):
				writeJSON(w, http.StatusBadRequest, "Wrong password", map[string]string{"email": req.Email})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			}
			return
		}

		setTokenCookies(w, pair)
		writeJSON(w, http.StatusOK, "Login success", LoginData{
			Name:        user.Name,
			Email:       user.Email,
			BearerToken: pair.AccessToken,
		})
	}
}
