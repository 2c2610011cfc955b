package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/opravila/internal/validate"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// validationError writes a 400 response carrying the field-keyed messages
// of every failed rule.
func validationError(w http.ResponseWriter, errs validate.Errors) {
	jsonResponse(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
