// Package ascent implements the Ascent repository using PostgreSQL.
// An ascent is unique per (user, objective, day); writes that repeat a day
// are ignored rather than rejected.
package ascent

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// bulkChunkSize keeps multi-row inserts well below the 65535 bind parameter
// limit (5 columns per row).
const bulkChunkSize = 1000

var columns = []string{"id", "user_id", "objective_id", "ascent_date", "source", "created_at"}

// Repo provides ascent persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new ascent repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByObjectives returns the user's ascents of the given objectives
// ordered by objective and date (batch for the progress loader).
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListByObjectives(ctx context.Context, userID uuid.UUID, objectiveIDs []uuid.UUID) ([]domain.Ascent, error) {
	if len(objectiveIDs) == 0 {
		return []domain.Ascent{}, nil
	}

	query, args, err := postgres.Builder.
		Select(columns...).
		From("ascents").
		Where("user_id = ?", userID).
		Where("objective_id = ANY(?::uuid[])", objectiveIDs).
		OrderBy("objective_id", "ascent_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list ascents query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ascents: %w", err)
	}
	defer rows.Close()

	result := []domain.Ascent{}
	for rows.Next() {
		a, err := scanAscent(rows)
		if err != nil {
			return nil, fmt.Errorf("list ascents: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ascents: %w", err)
	}

	return result, nil
}

// Create inserts an ascent. created is false when the user already logged
// the objective on that day; the existing row is left untouched.
func (r *Repo) Create(ctx context.Context, a domain.Ascent) (created bool, err error) {
	query, args, err := insertBuilder([]domain.Ascent{a}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert ascent query: %w", err)
	}

	var id uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	default:
		return false, postgres.MapError(err, "ascent", a.Date)
	}
}

// Delete removes the user's ascent of objectiveID on date.
// Returns domain.ErrNotFound if there is no such ascent.
func (r *Repo) Delete(ctx context.Context, userID, objectiveID uuid.UUID, date domain.Date) error {
	query, args, err := postgres.Builder.
		Delete("ascents").
		Where("user_id = ?", userID).
		Where("objective_id = ?", objectiveID).
		Where("ascent_date = ?", date.Time()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete ascent query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "ascent", date)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ascent %s: %w", date, domain.ErrNotFound)
	}

	return nil
}

// BulkCreate inserts ascents in chunks, skipping days that are already
// recorded, and returns the number of rows actually inserted.
// Callers that need all-or-nothing semantics run it inside a transaction.
func (r *Repo) BulkCreate(ctx context.Context, ascents []domain.Ascent) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	inserted := 0
	for start := 0; start < len(ascents); start += bulkChunkSize {
		end := min(start+bulkChunkSize, len(ascents))

		query, args, err := insertBuilder(ascents[start:end]).ToSql()
		if err != nil {
			return inserted, fmt.Errorf("build bulk insert query: %w", err)
		}

		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return inserted, postgres.MapError(err, "ascents", fmt.Sprintf("[%d:%d]", start, end))
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func insertBuilder(ascents []domain.Ascent) sq.InsertBuilder {
	b := postgres.Builder.
		Insert("ascents").
		Columns("id", "user_id", "objective_id", "ascent_date", "source")
	for _, a := range ascents {
		id := a.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		source := a.Source
		if source == "" {
			source = domain.AscentSourceManual
		}
		b = b.Values(id, a.UserID, a.ObjectiveID, a.Date.Time(), string(source))
	}
	return b.Suffix("ON CONFLICT (user_id, objective_id, ascent_date) DO NOTHING")
}

func scanAscent(rows pgx.Rows) (domain.Ascent, error) {
	var (
		a         domain.Ascent
		date      time.Time
		source    string
		createdAt time.Time
	)
	if err := rows.Scan(&a.ID, &a.UserID, &a.ObjectiveID, &date, &source, &createdAt); err != nil {
		return domain.Ascent{}, err
	}
	a.Date = domain.DateFromTime(date)
	a.Source = domain.AscentSource(source)
	a.CreatedAt = createdAt
	return a, nil
}
