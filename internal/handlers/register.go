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

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, name, email, password string) (*models.UserDB, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Display name, unique, at most 50 characters
	// required: true
	// default: john_doe
	Name string `json:"name"`

	// Email, unique
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password, at least 5 characters
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new active user account. Ensures unique name and email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} handlers.Response "Registration success"
// @Failure 400 {object} handlers.Response "Validation failure or name/email already taken"
// @Router /api/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		if violations := validation.ValidateRegister(req.Name, req.Email, req.Password); len(violations) > 0 {
			writeJSON(w, http.StatusBadRequest, violations, violations)
			return
		}

		user, err := svc.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUserAlreadyExists) {
				writeJSON(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			return
		}

		writeJSON(w, http.StatusOK, "Registration success", ProfileData{
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
