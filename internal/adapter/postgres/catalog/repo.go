// Package catalog implements read access to lists and their objectives.
// Lists are curated data: they are created by migrations or seed tooling,
// never through the API.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// Repo provides list and objective lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new catalog repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetList returns a list with its objectives ordered by position.
// Returns domain.ErrNotFound if the list does not exist.
func (r *Repo) GetList(ctx context.Context, listID uuid.UUID) (*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder.
		Select("id", "name", "variant").
		From("lists").
		Where("id = ?", listID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get list query: %w", err)
	}

	var (
		list    domain.List
		variant string
	)
	if err := q.QueryRow(ctx, query, args...).Scan(&list.ID, &list.Name, &variant); err != nil {
		return nil, postgres.MapError(err, "list", listID)
	}
	list.Variant = domain.ListVariant(variant)

	query, args, err = postgres.Builder.
		Select("o.id", "o.name", "o.kind").
		From("list_objectives lo").
		Join("objectives o ON o.id = lo.objective_id").
		Where("lo.list_id = ?", listID).
		OrderBy("lo.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list objectives query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list objectives of %s: %w", listID, err)
	}
	defer rows.Close()

	list.Objectives, err = scanObjectives(rows)
	if err != nil {
		return nil, fmt.Errorf("list objectives of %s: %w", listID, err)
	}

	return &list, nil
}

// ListsContaining returns the IDs of every list that includes the objective.
// Returns an empty slice (not nil) when the objective is on no list.
func (r *Repo) ListsContaining(ctx context.Context, objectiveID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := postgres.Builder.
		Select("list_id").
		From("list_objectives").
		Where("objective_id = ?", objectiveID).
		OrderBy("list_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lists containing query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lists containing %s: %w", objectiveID, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("lists containing %s: %w", objectiveID, err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}

func scanObjectives(rows pgx.Rows) ([]domain.Objective, error) {
	result := []domain.Objective{}
	for rows.Next() {
		var (
			o    domain.Objective
			kind string
		)
		if err := rows.Scan(&o.ID, &o.Name, &kind); err != nil {
			return nil, err
		}
		o.Kind = domain.ObjectiveKind(kind)
		result = append(result, o)
	}
	return result, rows.Err()
}
