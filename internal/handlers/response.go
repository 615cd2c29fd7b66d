package handlers

import (
	"encoding/json"
	"net/http"
)

// Meta carries the status block included in every JSON response.
// swagger:model Meta
type Meta struct {
	// HTTP status code mirrored into the body
	// default: 200
	StatusCode int `json:"statusCode"`

	// Whether the request succeeded
	// default: true
	Success bool `json:"success"`

	// Human-readable outcome, or a violation list for validation failures
	Message any `json:"message"`
}

// Response is the uniform JSON envelope returned by every endpoint.
// swagger:model Response
type Response struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

// ProfileData is the outbound projection of a user's own profile.
// The password hash is never part of any outbound representation.
// swagger:model ProfileData
type ProfileData struct {
	// Display name
	// default: john_doe
	Name string `json:"name"`

	// Email
	// default: john@example.com
	Email string `json:"email"`
}

func writeJSON(w http.ResponseWriter, statusCode int, message, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{
		Meta: Meta{
			StatusCode: statusCode,
			Success:    statusCode < http.StatusBadRequest,
			Message:    message,
		},
		Data: data,
	})
}
