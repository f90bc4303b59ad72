package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedList creates a list of the given variant with one mountain objective
// per name, in order. With no names it seeds a three-peak list with unique
// names.
func SeedList(t *testing.T, pool *pgxpool.Pool, variant domain.ListVariant, names ...string) domain.List {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	if len(names) == 0 {
		names = []string{"Washington " + suffix, "Adams " + suffix, "Jefferson " + suffix}
	}

	list := domain.List{
		ID:      uuid.New(),
		Name:    fmt.Sprintf("Test List %s", suffix),
		Variant: variant,
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO lists (id, name, variant) VALUES ($1, $2, $3)`,
		list.ID, list.Name, string(list.Variant),
	); err != nil {
		t.Fatalf("testhelper: SeedList insert list: %v", err)
	}

	for i, name := range names {
		obj := domain.Objective{ID: uuid.New(), Name: name, Kind: domain.ObjectiveKindMountain}
		if _, err := pool.Exec(ctx,
			`INSERT INTO objectives (id, name, kind) VALUES ($1, $2, $3)`,
			obj.ID, obj.Name, string(obj.Kind),
		); err != nil {
			t.Fatalf("testhelper: SeedList insert objective %q: %v", name, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO list_objectives (list_id, objective_id, position) VALUES ($1, $2, $3)`,
			list.ID, obj.ID, i,
		); err != nil {
			t.Fatalf("testhelper: SeedList link objective %q: %v", name, err)
		}
		list.Objectives = append(list.Objectives, obj)
	}

	return list
}
