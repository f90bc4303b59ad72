package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/metrics"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

// LogAscent records an ascent for the authenticated user and returns the
// objective's updated record. Logging a day that is already recorded is not
// an error.
func (s *Service) LogAscent(ctx context.Context, input LogAscentInput) (domain.CompletionRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.CompletionRecord{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.CompletionRecord{}, err
	}

	date, err := domain.ParseFields(input.Day, input.Month, input.Year, s.settings.Rules(s.now()))
	if err != nil {
		return domain.CompletionRecord{}, err
	}

	created, err := s.ascents.Create(ctx, domain.Ascent{
		UserID:      userID,
		ObjectiveID: input.ObjectiveID,
		Date:        date,
		Source:      domain.AscentSourceManual,
	})
	if err != nil {
		return domain.CompletionRecord{}, fmt.Errorf("create ascent: %w", err)
	}
	metrics.RecordAscentLogged(domain.AscentSourceManual.String(), created)

	if created {
		s.invalidateLists(ctx, userID, input.ObjectiveID)
		s.log.LogAttrs(ctx, slog.LevelInfo, "ascent logged", append(ctxutil.LogAttrs(ctx),
			slog.String("objective_id", input.ObjectiveID.String()),
			slog.String("date", date.String()),
		)...)
	}

	ascents, err := s.ascents.ListByObjectives(ctx, userID, []uuid.UUID{input.ObjectiveID})
	if err != nil {
		return domain.CompletionRecord{}, fmt.Errorf("list ascents: %w", err)
	}

	return recordFor(input.ObjectiveID, ascents), nil
}
