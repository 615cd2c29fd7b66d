package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/models"
)

// ActiveUserLister defines the interface that the service must implement.
type ActiveUserLister interface {
	ListActive(ctx context.Context) ([]models.UserDB, error)
}

// BannerUser is the public projection of an active user.
// swagger:model BannerUser
type BannerUser struct {
	// User ID
	// default: 1
	ID int64 `json:"id"`

	// Display name
	// default: john_doe
	Name string `json:"name"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Active flag, always true for listed users
	// default: true
	Status bool `json:"status"`
}

// NewGetBannerHandler returns an HTTP handler listing all active users.
// The endpoint is public.
// @Summary List active users
// @Description Returns id, name, email, and status of every active user, in id order.
// @Tags banner
// @Produce json
// @Success 200 {object} handlers.Response "Success"
// @Router /api/getbanner [get]
func NewGetBannerHandler(svc ActiveUserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListActive(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, "Internal server error", nil)
			return
		}

		list := make([]BannerUser, 0, len(users))
		for _, u := range users {
			list = append(list, BannerUser{
				ID:     u.ID,
				Name:   u.Name,
				Email:  u.Email,
				Status: u.Status,
			})
		}

		writeJSON(w, http.StatusOK, "Success", list)
	}
}
