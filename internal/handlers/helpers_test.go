package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// envelope mirrors Response for decoding in tests.
type envelope struct {
	Meta struct {
		StatusCode int  `json:"statusCode"`
		Success    bool `json:"success"`
		Message    any  `json:"message"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	err := json.Unmarshal(rr.Body.Bytes(), &env)
	assert.NoError(t, err)
	assert.Equal(t, rr.Code, env.Meta.StatusCode, "meta.statusCode mirrors the HTTP status")
	assert.Equal(t, rr.Code < 400, env.Meta.Success)
	return env
}

func findCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
