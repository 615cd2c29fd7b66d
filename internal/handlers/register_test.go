package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/sbilibin2017/user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedMsg  string
	}{
		{
			name: "success",
			body: `{"name":"alice","email":"a@x.com","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "a@x.com", "secret").
					Return(&models.UserDB{ID: 1, Name: "alice", Email: "a@x.com", Status: true}, nil)
			},
			expectedCode: 200,
			expectedMsg:  "Registration success",
		},
		{
			name: "duplicate name or email",
			body: `{"name":"alice","email":"a@x.com","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "a@x.com", "secret").
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode: 400,
			expectedMsg:  services.ErrUserAlreadyExists.Error(),
		},
		{
			name: "internal server error",
			body: `{"name":"alice","email":"a@x.com","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "a@x.com", "secret").
					Return(nil, errors.New("database failure"))
			},
			expectedCode: 500,
			expectedMsg:  "Internal server error",
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
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.expectedMsg, env.Meta.Message)

			if tt.expectedCode == 200 {
				var data ProfileData
				assert.NoError(t, json.Unmarshal(env.Data, &data))
				assert.Equal(t, ProfileData{Name: "alice", Email: "a@x.com"}, data)
			}
		})
	}
}

func TestRegisterHandler_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The service is never reached on a validation failure
	mockSvc := NewMockRegisterer(ctrl)
	handler := NewRegisterHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		bytes.NewBufferString(`{"name":"","email":"bad","password":"a"}`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, 400, rr.Code)

	env := decodeEnvelope(t, rr)
	violations, ok := env.Meta.Message.([]any)
	assert.True(t, ok, "meta.message carries the violation list")
	assert.Len(t, violations, 3)
}
