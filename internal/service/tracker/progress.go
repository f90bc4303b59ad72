package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/completion"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/progress"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/scale"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

// ObjectiveProgress is the resolved completion of one objective in a list.
type ObjectiveProgress struct {
	Objective   domain.Objective
	Record      domain.CompletionRecord
	Completion  domain.VariantCompletion
	Position    int
	Color       string
	Highlighted bool

	// Computed from the whole history regardless of filter.
	Winters []int       // distinct winters with an ascent, by ending year
	ByYear  map[int]int // filled slots when each calendar year is resolved alone
}

// ListProgressResult is the progress of a user through a list.
type ListProgressResult struct {
	List       domain.List
	Summary    domain.ProgressSummary
	Objectives []ObjectiveProgress // in list order
}

// ObjectiveCompletion resolves one objective under the variant of listID.
func (s *Service) ObjectiveCompletion(ctx context.Context, listID, objectiveID uuid.UUID) (ObjectiveProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ObjectiveProgress{}, domain.ErrUnauthorized
	}

	var errs []domain.FieldError
	if listID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "list_id", Message: "required"})
	}
	if objectiveID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "objective_id", Message: "required"})
	}
	if len(errs) > 0 {
		return ObjectiveProgress{}, &domain.ValidationError{Errors: errs}
	}

	list, err := s.catalog.GetList(ctx, listID)
	if err != nil {
		return ObjectiveProgress{}, fmt.Errorf("get list: %w", err)
	}

	var objective *domain.Objective
	for i := range list.Objectives {
		if list.Objectives[i].ID == objectiveID {
			objective = &list.Objectives[i]
			break
		}
	}
	if objective == nil {
		return ObjectiveProgress{}, fmt.Errorf("objective %s: %w", objectiveID, domain.ErrNotFound)
	}

	ascents, err := s.ascents.ListByObjectives(ctx, userID, []uuid.UUID{objectiveID})
	if err != nil {
		return ObjectiveProgress{}, fmt.Errorf("list ascents: %w", err)
	}

	return resolveObjective(list.Variant, *objective, recordFor(objectiveID, ascents), completion.Context{}, false)
}

// ListProgress resolves every objective of a list for the authenticated user.
// The completed count is the number of filled slots across all objectives.
func (s *Service) ListProgress(ctx context.Context, input ListProgressInput) (ListProgressResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ListProgressResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return ListProgressResult{}, err
	}

	list, err := s.catalog.GetList(ctx, input.ListID)
	if err != nil {
		return ListProgressResult{}, fmt.Errorf("get list: %w", err)
	}

	cacheable := input.Context.IsZero()
	var gen int64
	if cacheable {
		gen, cacheable = s.cacheGeneration(ctx, userID, list.ID)
	}

	objectives, err := s.resolveList(ctx, userID, list, input.Context, input.Highlight)
	if err != nil {
		return ListProgressResult{}, err
	}

	completions := make([]domain.VariantCompletion, len(objectives))
	for i, op := range objectives {
		completions[i] = op.Completion
	}
	summary := progress.SummarizeCompletions(list.Variant, len(list.Objectives), completions)

	if cacheable {
		s.storeSummary(ctx, userID, list.ID, gen, summary)
	}

	return ListProgressResult{
		List:       *list,
		Summary:    summary,
		Objectives: objectives,
	}, nil
}

// ListSummary returns the unfiltered progress summary of a list, served from
// the cache when possible.
func (s *Service) ListSummary(ctx context.Context, listID uuid.UUID) (domain.ProgressSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ProgressSummary{}, domain.ErrUnauthorized
	}
	if listID == uuid.Nil {
		return domain.ProgressSummary{}, domain.NewValidationError("list_id", "required")
	}

	cached, hit, err := s.cache.Get(ctx, userID, listID)
	if err != nil {
		s.log.WarnContext(ctx, "read progress cache",
			slog.String("list_id", listID.String()),
			slog.String("error", err.Error()),
		)
	}
	if hit {
		return cached, nil
	}

	gen, cacheable := s.cacheGeneration(ctx, userID, listID)

	list, err := s.catalog.GetList(ctx, listID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("get list: %w", err)
	}

	records, err := loadRecords(ctx, newRecordLoader(s.ascents, userID), objectiveIDs(list))
	if err != nil {
		return domain.ProgressSummary{}, err
	}

	completions := make([]domain.VariantCompletion, len(records))
	for i, rec := range records {
		completions[i] = completion.ResolveRecord(list.Variant, rec, completion.Context{})
	}
	summary := progress.SummarizeCompletions(list.Variant, len(list.Objectives), completions)

	if cacheable {
		s.storeSummary(ctx, userID, listID, gen, summary)
	}
	return summary, nil
}

func (s *Service) resolveList(
	ctx context.Context,
	userID uuid.UUID,
	list *domain.List,
	filter completion.Context,
	highlight *uuid.UUID,
) ([]ObjectiveProgress, error) {
	records, err := loadRecords(ctx, newRecordLoader(s.ascents, userID), objectiveIDs(list))
	if err != nil {
		return nil, err
	}

	out := make([]ObjectiveProgress, len(list.Objectives))
	for i, obj := range list.Objectives {
		highlighted := highlight != nil && *highlight == obj.ID
		op, err := resolveObjective(list.Variant, obj, records[i], filter, highlighted)
		if err != nil {
			return nil, err
		}
		out[i] = op
	}
	return out, nil
}

// cacheGeneration reads the cache generation before ascents are loaded. ok
// is false when the generation is unknown and the summary must not be stored.
func (s *Service) cacheGeneration(ctx context.Context, userID, listID uuid.UUID) (gen int64, ok bool) {
	gen, err := s.cache.Generation(ctx, userID, listID)
	if err != nil {
		s.log.WarnContext(ctx, "read progress cache generation",
			slog.String("list_id", listID.String()),
			slog.String("error", err.Error()),
		)
		return 0, false
	}
	return gen, true
}

func (s *Service) storeSummary(ctx context.Context, userID, listID uuid.UUID, gen int64, summary domain.ProgressSummary) {
	stored, err := s.cache.Set(ctx, userID, listID, gen, summary)
	if err != nil {
		s.log.WarnContext(ctx, "write progress cache",
			slog.String("list_id", listID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if !stored {
		s.log.DebugContext(ctx, "progress cache invalidated during read",
			slog.String("list_id", listID.String()),
		)
	}
}

// resolveObjective maps a record onto the variant's slots and scale. A
// highlighted objective takes the top of the scale and the highlight color.
func resolveObjective(
	variant domain.ListVariant,
	obj domain.Objective,
	rec domain.CompletionRecord,
	filter completion.Context,
	highlighted bool,
) (ObjectiveProgress, error) {
	c := completion.ResolveRecord(variant, rec, filter)

	var h scale.Highlight
	if highlighted {
		h = scale.Highlight{Active: true, Index: scale.Length(variant) - 1}
	}

	color, err := scale.Color(variant, c, h)
	if err != nil {
		return ObjectiveProgress{}, fmt.Errorf("objective %s: %w", obj.ID, err)
	}

	dates := rec.ParsedDates()
	byYear := make(map[int]int)
	for year, yc := range completion.ByCalendarYear(variant, dates) {
		byYear[year] = scale.Position(yc)
	}

	return ObjectiveProgress{
		Objective:   obj,
		Record:      rec,
		Completion:  c,
		Position:    scale.PositionWithOverride(c, h),
		Color:       color,
		Highlighted: highlighted,
		Winters:     completion.WinterInstances(dates),
		ByYear:      byYear,
	}, nil
}

func objectiveIDs(list *domain.List) []uuid.UUID {
	ids := make([]uuid.UUID, len(list.Objectives))
	for i, o := range list.Objectives {
		ids[i] = o.ID
	}
	return ids
}
