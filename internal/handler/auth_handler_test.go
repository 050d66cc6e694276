package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutricalc/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	creds := model.Credentials{Email: "ada@example.com", Password: "Secret123"}
	user := &model.User{ID: uuid.New(), Email: creds.Email}

	tests := []struct {
		name           string
		body           string
		mockUser       *model.User
		mockError      error
		callService    bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			body:           `{"email":"ada@example.com","password":"Secret123"}`,
			mockUser:       user,
			callService:    true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Duplicate email",
			body:           `{"email":"ada@example.com","password":"Secret123"}`,
			mockError:      model.ErrEmailTaken,
			callService:    true,
			expectedStatus: http.StatusConflict,
			expectedCode:   model.ErrCodeConflict,
		},
		{
			name:           "Weak password",
			body:           `{"email":"ada@example.com","password":"Secret123"}`,
			mockError:      model.NewValidationError("Password must be at least 8 characters long"),
			callService:    true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name:           "Invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			if tt.callService {
				svc.On("Register", mock.Anything, creds).Return(tt.mockUser, tt.mockError)
			}

			h := NewAuthHandler(svc, zerolog.Nop())
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			} else {
				var resp model.RegisterResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, user.ID, resp.UserID)
				assert.NotContains(t, w.Body.String(), "password")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	creds := model.Credentials{Email: "ada@example.com", Password: "Secret123"}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, creds).Return("signed-token", nil)

		h := NewAuthHandler(svc, zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"Secret123"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.AccessToken)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, creds).Return("", model.ErrInvalidCredentials)

		h := NewAuthHandler(svc, zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"Secret123"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, model.ErrCodeUnauthorised, body.Error)
		assert.Equal(t, "Invalid credentials", body.Message)
	})
}
