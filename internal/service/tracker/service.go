// Package tracker implements the ascent tracking use cases: logging and
// deleting ascents, list progress and grid imports.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
)

type ascentRepo interface {
	ListByObjectives(ctx context.Context, userID uuid.UUID, objectiveIDs []uuid.UUID) ([]domain.Ascent, error)
	Create(ctx context.Context, a domain.Ascent) (bool, error)
	Delete(ctx context.Context, userID, objectiveID uuid.UUID, date domain.Date) error
	BulkCreate(ctx context.Context, ascents []domain.Ascent) (int, error)
}

type catalogRepo interface {
	GetList(ctx context.Context, listID uuid.UUID) (*domain.List, error)
	ListsContaining(ctx context.Context, objectiveID uuid.UUID) ([]uuid.UUID, error)
}

type progressCache interface {
	Get(ctx context.Context, userID, listID uuid.UUID) (domain.ProgressSummary, bool, error)
	Generation(ctx context.Context, userID, listID uuid.UUID) (int64, error)
	Set(ctx context.Context, userID, listID uuid.UUID, generation int64, summary domain.ProgressSummary) (bool, error)
	Invalidate(ctx context.Context, userID uuid.UUID, listIDs ...uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Settings carries the time-dependent parsing rules. Nil funcs fall back to
// domain.DefaultDateRules and gridimport.DefaultOptions.
type Settings struct {
	Rules  func(now time.Time) domain.DateRules
	Import func(now time.Time) gridimport.Options
}

// Service implements the tracker business logic.
type Service struct {
	log      *slog.Logger
	ascents  ascentRepo
	catalog  catalogRepo
	cache    progressCache
	tx       txManager
	settings Settings
	now      func() time.Time
}

// NewService creates a new tracker service. cache may be nil, in which case
// summaries are always computed.
func NewService(
	log *slog.Logger,
	ascents ascentRepo,
	catalog catalogRepo,
	cache progressCache,
	tx txManager,
	settings Settings,
) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if settings.Rules == nil {
		settings.Rules = domain.DefaultDateRules
	}
	if settings.Import == nil {
		settings.Import = gridimport.DefaultOptions
	}
	return &Service{
		log:      log.With("service", "tracker"),
		ascents:  ascents,
		catalog:  catalog,
		cache:    cache,
		tx:       tx,
		settings: settings,
		now:      time.Now,
	}
}

// invalidateLists drops cached summaries of every list containing one of the
// objectives. Failures are logged; stale entries expire with the cache TTL.
func (s *Service) invalidateLists(ctx context.Context, userID uuid.UUID, objectiveIDs ...uuid.UUID) {
	seen := make(map[uuid.UUID]struct{})
	var listIDs []uuid.UUID
	for _, objID := range objectiveIDs {
		ids, err := s.catalog.ListsContaining(ctx, objID)
		if err != nil {
			s.log.WarnContext(ctx, "lists containing objective",
				slog.String("objective_id", objID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				listIDs = append(listIDs, id)
			}
		}
	}
	if len(listIDs) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, userID, listIDs...); err != nil {
		s.log.WarnContext(ctx, "invalidate progress cache",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// recordFor collapses ascents of one objective into its raw record.
func recordFor(objectiveID uuid.UUID, ascents []domain.Ascent) domain.CompletionRecord {
	rec := domain.CompletionRecord{ObjectiveID: objectiveID, Dates: []string{}}
	for _, a := range ascents {
		if a.ObjectiveID == objectiveID {
			rec.Dates = append(rec.Dates, a.Date.String())
		}
	}
	return rec
}

type noopCache struct{}

func (noopCache) Get(context.Context, uuid.UUID, uuid.UUID) (domain.ProgressSummary, bool, error) {
	return domain.ProgressSummary{}, false, nil
}

func (noopCache) Generation(context.Context, uuid.UUID, uuid.UUID) (int64, error) { return 0, nil }

func (noopCache) Set(context.Context, uuid.UUID, uuid.UUID, int64, domain.ProgressSummary) (bool, error) {
	return false, nil
}

func (noopCache) Invalidate(context.Context, uuid.UUID, ...uuid.UUID) error { return nil }
