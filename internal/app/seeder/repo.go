// Package seeder loads the curated list catalog (objectives and lists) into
// the database.
package seeder

import (
	"context"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// CatalogWriter is the repository contract consumed by the seeder pipeline.
// Implemented by catalog.Repo.
type CatalogWriter interface {
	UpsertObjectives(ctx context.Context, objectives []domain.Objective) (int, error)
	ReplaceList(ctx context.Context, list domain.List) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
