package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/completion"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/scale"
)

type trackerService interface {
	LogAscent(ctx context.Context, input tracker.LogAscentInput) (domain.CompletionRecord, error)
	DeleteAscent(ctx context.Context, input tracker.DeleteAscentInput) error
	ObjectiveCompletion(ctx context.Context, listID, objectiveID uuid.UUID) (tracker.ObjectiveProgress, error)
	ListProgress(ctx context.Context, input tracker.ListProgressInput) (tracker.ListProgressResult, error)
	ListSummary(ctx context.Context, listID uuid.UUID) (domain.ProgressSummary, error)
	ImportGrid(ctx context.Context, input tracker.ImportGridInput) (tracker.ImportGridResult, error)
}

// TrackerHandler serves the ascent tracking endpoints.
type TrackerHandler struct {
	svc            trackerService
	log            *slog.Logger
	maxUploadBytes int64
}

// NewTrackerHandler creates a TrackerHandler.
func NewTrackerHandler(svc trackerService, logger *slog.Logger, maxUploadBytes int64) *TrackerHandler {
	return &TrackerHandler{
		svc:            svc,
		log:            logger.With("handler", "tracker"),
		maxUploadBytes: maxUploadBytes,
	}
}

// ListProgress handles GET /api/lists/{listID}/progress.
func (h *TrackerHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "listID", "list_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	input, style, err := parseProgressQuery(r, listID)
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	res, err := h.svc.ListProgress(r.Context(), input)
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	resp := listProgressResponse{
		List: listResponse{
			ID:      res.List.ID.String(),
			Name:    res.List.Name,
			Variant: res.List.Variant.String(),
		},
		Summary:    toSummaryResponse(res.Summary),
		Palette:    scale.Palette(res.List.Variant),
		Objectives: make([]objectiveResponse, len(res.Objectives)),
	}
	for i, op := range res.Objectives {
		resp.Objectives[i] = toObjectiveResponse(op, style)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSummary handles GET /api/lists/{listID}/summary.
func (h *TrackerHandler) ListSummary(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "listID", "list_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	summary, err := h.svc.ListSummary(r.Context(), listID)
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// ObjectiveCompletion handles GET /api/lists/{listID}/objectives/{objectiveID}.
func (h *TrackerHandler) ObjectiveCompletion(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "listID", "list_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	objectiveID, err := pathUUID(r, "objectiveID", "objective_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	style, err := parseStyle(r.URL.Query().Get("style"))
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	op, err := h.svc.ObjectiveCompletion(r.Context(), listID, objectiveID)
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toObjectiveResponse(op, style))
}

// LogAscent handles POST /api/objectives/{objectiveID}/ascents.
func (h *TrackerHandler) LogAscent(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := pathUUID(r, "objectiveID", "objective_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	var req logAscentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.LogAscent(r.Context(), tracker.LogAscentInput{
		ObjectiveID: objectiveID,
		Day:         string(req.Day),
		Month:       string(req.Month),
		Year:        string(req.Year),
	})
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// DeleteAscent handles DELETE /api/objectives/{objectiveID}/ascents/{date}.
func (h *TrackerHandler) DeleteAscent(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := pathUUID(r, "objectiveID", "objective_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	err = h.svc.DeleteAscent(r.Context(), tracker.DeleteAscentInput{
		ObjectiveID: objectiveID,
		Date:        r.PathValue("date"),
	})
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportGrid handles POST /api/lists/{listID}/import with a CSV or TSV body.
func (h *TrackerHandler) ImportGrid(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "listID", "list_id")
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}

	table, err := gridimport.ReadTable(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	if err != nil {
		presentError(w, r, h.log, fmt.Errorf("read table: %w", asTableError(err)))
		return
	}

	res, err := h.svc.ImportGrid(r.Context(), tracker.ImportGridInput{ListID: listID, Table: table})
	if err != nil {
		presentError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toImportResponse(res))
}

// asTableError reports unreadable tables as validation errors. Size and row
// limit errors pass through unchanged.
func asTableError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, gridimport.ErrTooManyRows) {
		return err
	}
	return domain.NewValidationError("table", err.Error())
}

func pathUUID(r *http.Request, name, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "invalid id")
	}
	return id, nil
}

// parseProgressQuery reads highlight, season, month, winter and style.
// Months may be given as a number or an English month name.
func parseProgressQuery(r *http.Request, listID uuid.UUID) (tracker.ListProgressInput, domain.DateStyle, error) {
	q := r.URL.Query()
	input := tracker.ListProgressInput{ListID: listID}
	var errs []domain.FieldError

	if v := q.Get("highlight"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "highlight", Message: "invalid id"})
		} else {
			input.Highlight = &id
		}
	}

	var ctx completion.Context
	if v := q.Get("season"); v != "" {
		ctx.Season = domain.Season(strings.ToUpper(strings.TrimSpace(v)))
	}
	if v := q.Get("month"); v != "" {
		if m, ok := domain.MonthIndex(v); ok {
			ctx.Month = m
		} else if m, err := strconv.Atoi(v); err == nil {
			if m < 1 || m > 12 {
				errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
			} else {
				ctx.Month = m
			}
		} else {
			errs = append(errs, domain.FieldError{Field: "month", Message: "must be a month number or name"})
		}
	}
	if v := q.Get("winter"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			errs = append(errs, domain.FieldError{Field: "winter", Message: "must be a year"})
		} else {
			ctx.WinterOf = y
		}
	}
	input.Context = ctx

	style, err := parseStyle(q.Get("style"))
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "style", Message: "must be short, month-year or full"})
	}

	if len(errs) > 0 {
		return tracker.ListProgressInput{}, "", &domain.ValidationError{Errors: errs}
	}
	return input, style, nil
}

func parseStyle(v string) (domain.DateStyle, error) {
	switch s := domain.DateStyle(v); s {
	case "", domain.DateStyleShort, domain.DateStyleMonthYear, domain.DateStyleFull:
		return s, nil
	}
	return "", domain.NewValidationError("style", "must be short, month-year or full")
}
