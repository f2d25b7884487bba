package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/tally/internal/api"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes {"message": msg}, the body clients show to users.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, api.Message{Message: msg})
}

// Internal logs err and answers 500 with msg, keeping err out of the body.
func Internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err, "path", r.URL.Path)
	Message(w, http.StatusInternalServerError, msg)
}

// Decode reads a JSON body into v. It answers 400 and returns false when the
// body is malformed.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	return true
}
