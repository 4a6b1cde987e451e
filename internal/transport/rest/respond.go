package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wordhabit/wordhabit-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain error kinds onto HTTP statuses. Validation
// failures keep their message; everything else gets a generic body.
func writeDomainError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrFetchFailed):
		writeError(w, http.StatusBadGateway, "upstream fetch failed")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
