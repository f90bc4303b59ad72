package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/metrics"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

// DeleteAscent removes one recorded ascent of the authenticated user.
func (s *Service) DeleteAscent(ctx context.Context, input DeleteAscentInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return err
	}

	if err := s.ascents.Delete(ctx, userID, input.ObjectiveID, date); err != nil {
		return fmt.Errorf("delete ascent: %w", err)
	}
	metrics.RecordAscentDeleted()

	s.invalidateLists(ctx, userID, input.ObjectiveID)

	s.log.LogAttrs(ctx, slog.LevelInfo, "ascent deleted", append(ctxutil.LogAttrs(ctx),
		slog.String("objective_id", input.ObjectiveID.String()),
		slog.String("date", date.String()),
	)...)

	return nil
}
