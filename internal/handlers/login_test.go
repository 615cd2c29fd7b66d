package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/sbilibin2017/user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)
	mockSvc.EXPECT().
		Login(gomock.Any(), "a@x.com", "secret").
		Return(
			&models.UserDB{ID: 1, Name: "alice", Email: "a@x.com", Status: true},
			&services.TokenPair{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				AccessTTL:    time.Hour,
				RefreshTTL:   24 * time.Hour,
			},
			nil,
		)

	handler := NewLoginHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"email":"a@x.com","password":"secret"}`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, 200, rr.Code)

	env := decodeEnvelope(t, rr)
	assert.Equal(t, "Login success", env.Meta.Message)

	var data LoginData
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "alice", data.Name)
	assert.Equal(t, "a@x.com", data.Email)
	assert.Equal(t, "access-token", data.BearerToken)

	// Both tokens are mirrored into HTTP-only cookies with TTL max-ages
	access := findCookie(t, rr, "accessToken")
	assert.NotNil(t, access)
	assert.Equal(t, "access-token", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, 3600, access.MaxAge)

	refresh := findCookie(t, rr, "refreshToken")
	assert.NotNil(t, refresh)
	assert.Equal(t, "refresh-token", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, 86400, refresh.MaxAge)
}

func TestLoginHandler_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "email not found",
			body: `{"email":"nobody@x.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "nobody@x.com", "secret").
					Return(nil, nil, services.ErrEmailNotFound)
			},
			expectedCode: 400,
			expectedMsg:  "Email not found",
		},
		{
			name: "wrong password",
			body: `{"email":"a@x.com","password":"wrongpass"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "a@x.com", "wrongpass").
					Return(nil, nil, services.ErrWrongPassword)
			},
			expectedCode: 400,
			expectedMsg:  "Wrong password",
		},
		{
			name:         "invalid json",
			body:         "{invalid json}",
			expectedCode: 400,
			expectedMsg:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.expectedMsg, env.Meta.Message)

			// No cookies on failed logins
			assert.Nil(t, findCookie(t, rr, "accessToken"))
			assert.Nil(t, findCookie(t, rr, "refreshToken"))
		})
	}
}

func TestLoginHandler_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)
	handler := NewLoginHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"email":"","password":""}`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, 400, rr.Code)

	env := decodeEnvelope(t, rr)
	violations, ok := env.Meta.Message.([]any)
	assert.True(t, ok)
	assert.Len(t, violations, 2)
}
