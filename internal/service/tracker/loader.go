package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// recordLoader batches completion record lookups of one user into
// ListByObjectives calls of at most maxBatch objectives.
type recordLoader = dataloader.Loader[uuid.UUID, domain.CompletionRecord]

func newRecordLoader(repo ascentRepo, userID uuid.UUID) *recordLoader {
	return dataloader.NewBatchedLoader(
		newRecordsBatchFn(repo, userID),
		dataloader.WithWait[uuid.UUID, domain.CompletionRecord](wait),
		dataloader.WithBatchCapacity[uuid.UUID, domain.CompletionRecord](maxBatch),
	)
}

func newRecordsBatchFn(repo ascentRepo, userID uuid.UUID) dataloader.BatchFunc[uuid.UUID, domain.CompletionRecord] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.CompletionRecord] {
		results := make([]*dataloader.Result[domain.CompletionRecord], len(keys))

		ascents, err := repo.ListByObjectives(ctx, userID, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[domain.CompletionRecord]{Error: err}
			}
			return results
		}

		grouped := make(map[uuid.UUID][]string, len(keys))
		for _, a := range ascents {
			grouped[a.ObjectiveID] = append(grouped[a.ObjectiveID], a.Date.String())
		}

		for i, key := range keys {
			dates := grouped[key]
			if dates == nil {
				dates = []string{}
			}
			results[i] = &dataloader.Result[domain.CompletionRecord]{
				Data: domain.CompletionRecord{ObjectiveID: key, Dates: dates},
			}
		}
		return results
	}
}

// loadRecords returns the records of objectiveIDs in the same order.
func loadRecords(ctx context.Context, loader *recordLoader, objectiveIDs []uuid.UUID) ([]domain.CompletionRecord, error) {
	if len(objectiveIDs) == 0 {
		return []domain.CompletionRecord{}, nil
	}

	records, errs := loader.LoadMany(ctx, objectiveIDs)()
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("load records: %w", err)
		}
	}
	return records, nil
}
