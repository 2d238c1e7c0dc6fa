// Package response writes JSON bodies and maps domain errors to status codes.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/salon/internal/backup"
	"github.com/MrJamesThe3rd/salon/internal/importer/contacts"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status matching its kind. Unknown errors are
// logged and reported as a bare internal error.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, salon.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, salon.ErrInvalidInput),
		errors.Is(err, backup.ErrInvalidFormat),
		errors.Is(err, contacts.ErrNoHeader):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, salon.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
