package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"playlist-server/internal/shared/errors"
)

// ErrorResponse represents the JSON error response sent to clients
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type errorPolicy struct {
	status int
	level  slog.Level
	log    string
	// exposeCause sends the wrapped cause to the client as part of the message
	exposeCause bool
}

var policies = map[errors.ErrorType]errorPolicy{
	errors.ErrorTypeNotFound:         {http.StatusNotFound, slog.LevelDebug, "Resource not found", true},
	errors.ErrorTypeValidation:       {http.StatusBadRequest, slog.LevelDebug, "Validation error", true},
	errors.ErrorTypeMethodNotAllowed: {http.StatusMethodNotAllowed, slog.LevelDebug, "Method not allowed", true},
	errors.ErrorTypeRateLimited:      {http.StatusTooManyRequests, slog.LevelWarn, "Rate limit exceeded", true},
	errors.ErrorTypeExternal:         {http.StatusServiceUnavailable, slog.LevelError, "External service error", false},
	errors.ErrorTypeInternal:         {http.StatusInternalServerError, slog.LevelError, "Internal server error", false},
}

func policyFor(errorType errors.ErrorType) errorPolicy {
	if p, ok := policies[errorType]; ok {
		return p
	}
	return policies[errors.ErrorTypeInternal]
}

// Error logs an error and sends a JSON error response to the client.
// This should be the only place where request errors are logged.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	policy := policyFor(errorType)

	message := errors.PublicMessage(err)
	if policy.exposeCause {
		message = err.Error()
	}

	logger.Log(r.Context(), policy.level, policy.log,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", policy.status,
		"error", err,
	)

	writeJSON(w, policy.status, ErrorResponse{
		Error:   string(errorType),
		Message: message,
		Code:    policy.status,
	})
}

// Success sends a JSON success response to the client
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	if data == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		return
	}
	writeJSON(w, statusCode, data)
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// The status line is already out; an encoding failure here has no recovery
	_ = json.NewEncoder(w).Encode(body)
}
