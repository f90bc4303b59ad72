package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

type errorResponse struct {
	Error     string          `json:"error"`
	Fields    []fieldResponse `json:"fields,omitempty"`
	Structure *structResponse `json:"structure,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type structResponse struct {
	What     string `json:"what"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// presentError maps domain errors to HTTP status codes. Unexpected errors
// are logged and hidden behind a generic 500.
func presentError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve       *domain.ValidationError
		se       *domain.StructuralError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: "validation failed", Fields: make([]fieldResponse, len(ve.Errors))}
		for i, fe := range ve.Errors {
			resp.Fields[i] = fieldResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &se):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     "unexpected table structure",
			Structure: &structResponse{What: se.What, Expected: se.Expected, Actual: se.Actual},
		})
	case errors.Is(err, gridimport.ErrTooManyRows):
		writeError(w, http.StatusUnprocessableEntity, "table has too many rows")
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		attrs := append(ctxutil.LogAttrs(r.Context()),
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
		log.LogAttrs(r.Context(), slog.LevelError, "internal error", attrs...)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
