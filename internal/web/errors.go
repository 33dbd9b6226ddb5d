package web

// errors.go provides unified JSON response handling for the web layer.
// Errors are logged with full technical detail server-side and returned to
// clients with sanitized messages.

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vitalcoach/backend/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// writeError writes a JSON error response. The full message is logged
// server-side; the client receives a sanitized version.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeErrorDetails(w, r, status, message, nil)
}

// writeErrorDetails writes a JSON error response with per-field details,
// used for request validation failures.
func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, message string, details []string) {
	logger := logging.FromContext(r.Context())
	logger.Error("request error",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   sanitizeErrorMessage(status, message),
		Details: details,
	})
}

// writeJSON encodes v as JSON with the given status code.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// sanitizeErrorMessage hides infrastructure detail from clients. Server
// errors and messages leaking database internals are replaced with a
// generic message; client errors pass through.
func sanitizeErrorMessage(status int, message string) string {
	if status >= http.StatusInternalServerError {
		return "internal server error"
	}
	lower := strings.ToLower(message)
	for _, leak := range []string{"sqlstate", "connection refused", "dial tcp"} {
		if strings.Contains(lower, leak) {
			return "internal server error"
		}
	}
	return message
}
