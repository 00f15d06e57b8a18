package httpserver

import (
	"errors"
	"net/http"

	"medinbox/internal/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError maps domain errors to status codes. Internal errors are not
// echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = domain.ErrInternal.Error()
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
