package handler

import (
	"net/http"

	"nutricalc/internal/model"
	"nutricalc/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), creds)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, h.logger, http.StatusCreated, model.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles POST /login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, model.LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
	})
}
