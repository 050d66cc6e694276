package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nutricalc/internal/middleware"
	"nutricalc/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code. The body is
// encoded before the header is sent, so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error().
			Err(err).
			Int("status", status).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("failed to encode response")
		middleware.WriteError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError maps err to a status code and writes the standard error body.
// Only the error's public message reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	code := model.ErrorCode(err)
	status := statusForCode(code)
	requestID := chimw.GetReqID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("code", code).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, r, logger, status, model.ErrorResponse{
		Error:         code,
		Message:       model.PublicMessage(err),
		CorrelationID: requestID,
	})
}

// statusForCode returns the HTTP status for an error code.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeLookup, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeConflict:
		return http.StatusConflict
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case model.ErrCodeRemoteUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a bounded request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewDomainError(model.ErrCodeInvalidJSON, "Request body is required")
		}
		return &model.DomainError{Code: model.ErrCodeInvalidJSON, Message: "Invalid request body", Err: err}
	}
	return nil
}

// requireUser returns the authenticated user id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, model.ErrInvalidCredentials, logger)
		return uuid.Nil, false
	}
	return userID, true
}
