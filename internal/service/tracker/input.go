package tracker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/completion"
)

// LogAscentInput holds the raw user-entered date of a new ascent.
type LogAscentInput struct {
	ObjectiveID uuid.UUID
	Day         string
	Month       string
	Year        string
}

// Validate checks the fields that do not depend on date rules.
func (i LogAscentInput) Validate() error {
	var errs []domain.FieldError

	if i.ObjectiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "objective_id", Message: "required"})
	}
	if strings.TrimSpace(i.Day) == "" {
		errs = append(errs, domain.FieldError{Field: "day", Message: "required"})
	}
	if strings.TrimSpace(i.Month) == "" {
		errs = append(errs, domain.FieldError{Field: "month", Message: "required"})
	}
	if strings.TrimSpace(i.Year) == "" {
		errs = append(errs, domain.FieldError{Field: "year", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteAscentInput identifies an ascent by objective and canonical date.
type DeleteAscentInput struct {
	ObjectiveID uuid.UUID
	Date        string
}

// Validate checks all fields and collects all errors.
func (i DeleteAscentInput) Validate() error {
	var errs []domain.FieldError

	if i.ObjectiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "objective_id", Message: "required"})
	}
	if strings.TrimSpace(i.Date) == "" {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	} else if _, err := domain.ParseDate(i.Date); err != nil {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListProgressInput selects a list and optional display filters.
type ListProgressInput struct {
	ListID uuid.UUID
	// Highlight is the objective currently being edited, if any.
	Highlight *uuid.UUID
	Context   completion.Context
}

// Validate checks all fields and collects all errors.
func (i ListProgressInput) Validate() error {
	var errs []domain.FieldError

	if i.ListID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "list_id", Message: "required"})
	}
	if i.Highlight != nil && *i.Highlight == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "highlight", Message: "invalid id"})
	}
	if i.Context.Season != "" && !i.Context.Season.IsValid() {
		errs = append(errs, domain.FieldError{Field: "season", Message: "unknown season"})
	}
	if i.Context.Month < 0 || i.Context.Month > 12 {
		errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}
	if i.Context.WinterOf < 0 {
		errs = append(errs, domain.FieldError{Field: "winter_of", Message: "must be a year"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ImportGridInput holds a decoded grid table for a list.
type ImportGridInput struct {
	ListID uuid.UUID
	Table  [][]string
}

// Validate checks all fields and collects all errors.
func (i ImportGridInput) Validate() error {
	var errs []domain.FieldError

	if i.ListID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "list_id", Message: "required"})
	}
	if len(i.Table) == 0 {
		errs = append(errs, domain.FieldError{Field: "table", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
