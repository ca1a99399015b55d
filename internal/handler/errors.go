package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/httputil"
)

// writeJSON writes v with the given status. Encoding failures are logged and
// otherwise swallowed: headers are already on the wire by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes the standard error envelope shared with the middleware
// package.
func writeError(w http.ResponseWriter, status int, code, message string) {
	httputil.WriteError(w, status, code, message)
}

// respondError maps a service error to its HTTP representation.
// The message argument overrides the not-found message only, because the
// handler is the layer that knows what was being looked up; other codes carry
// the message extracted from the wrapped sentinel error.
func respondError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMessage)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", "sign in to perform this action")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized", "you are not allowed to modify this booking")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusConflict, "vehicle_unavailable",
			"the vehicle is not available for the selected dates, or the booking starts less than 7 days from now")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "duplicate_email", "this email is already registered")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// validationMessage extracts the human-readable detail from a wrapped
// domain.ValidationError, falling back to the full error text for a bare
// sentinel.
func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Detail
	}
	return err.Error()
}
