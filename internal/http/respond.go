package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PatricioAlv/adminGastos/internal/auth"
	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var validationErrors = []error{
	core.ErrInvalidAmount,
	core.ErrInvalidDueDay,
	core.ErrInvalidMonth,
	core.ErrInvalidYear,
	core.ErrInvalidCategory,
	core.ErrEmptyDescription,
	core.ErrDescriptionTooLong,
	core.ErrEmptyUserID,
	core.ErrEmptyReference,
	core.ErrMissingPaymentDate,
	core.ErrMissingDate,
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// decodeBody parses a JSON request body. A malformed body is the client's
// fault, so failures surface as 400 rather than going through writeError.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		// Amount and date parse failures inside UnmarshalJSON are
		// validation problems, not syntax problems.
		if status := statusForError(err); status == http.StatusUnprocessableEntity {
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
