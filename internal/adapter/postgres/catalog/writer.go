package catalog

import (
	"context"
	"fmt"

	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// UpsertObjectives inserts objectives or updates the name and kind of
// existing ones. Returns the number of rows written.
func (r *Repo) UpsertObjectives(ctx context.Context, objectives []domain.Objective) (int, error) {
	if len(objectives) == 0 {
		return 0, nil
	}

	b := postgres.Builder.
		Insert("objectives").
		Columns("id", "name", "kind")
	for _, o := range objectives {
		b = b.Values(o.ID, o.Name, string(o.Kind))
	}
	query, args, err := b.
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, kind = EXCLUDED.kind").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build upsert objectives query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "objectives", fmt.Sprintf("batch of %d", len(objectives)))
	}
	return int(tag.RowsAffected()), nil
}

// ReplaceList upserts the list row and replaces its membership with
// list.Objectives in order. Run it in a transaction: membership is deleted
// before it is rewritten.
func (r *Repo) ReplaceList(ctx context.Context, list domain.List) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder.
		Insert("lists").
		Columns("id", "name", "variant").
		Values(list.ID, list.Name, string(list.Variant)).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, variant = EXCLUDED.variant").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert list query: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "list", list.ID)
	}

	query, args, err = postgres.Builder.
		Delete("list_objectives").
		Where("list_id = ?", list.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear list query: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("clear list %s: %w", list.ID, err)
	}

	if len(list.Objectives) == 0 {
		return nil
	}

	b := postgres.Builder.
		Insert("list_objectives").
		Columns("list_id", "objective_id", "position")
	for i, o := range list.Objectives {
		b = b.Values(list.ID, o.ID, i)
	}
	query, args, err = b.ToSql()
	if err != nil {
		return fmt.Errorf("build list membership query: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "list objective", list.ID)
	}

	return nil
}
