package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/internal/metrics"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

// ImportGridResult summarizes a finished grid import.
type ImportGridResult struct {
	Imported     int // new ascents written
	Duplicates   int // parsed dates that were already recorded
	SkippedRows  []string
	DroppedCells []gridimport.CellError
	Stats        gridimport.Stats
}

// ImportGrid parses a grid export against the objectives of a list and
// records every parsed date in one transaction. A structural error aborts
// the import before anything is written.
func (s *Service) ImportGrid(ctx context.Context, input ImportGridInput) (ImportGridResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ImportGridResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return ImportGridResult{}, err
	}

	list, err := s.catalog.GetList(ctx, input.ListID)
	if err != nil {
		return ImportGridResult{}, fmt.Errorf("get list: %w", err)
	}

	parser := gridimport.NewParser(s.log, s.settings.Import(s.now()))
	parsed, err := parser.Parse(input.Table, list.Roster())
	if err != nil {
		if errors.Is(err, domain.ErrStructure) {
			metrics.RecordImport("structural")
		} else {
			metrics.RecordImport("failed")
		}
		return ImportGridResult{}, err
	}
	metrics.RecordImportCells(parsed.Stats.Parsed, parsed.Stats.Empty, parsed.Stats.Unrecognized, parsed.Stats.Dropped)

	var (
		ascents    []domain.Ascent
		touchedIDs []uuid.UUID
	)
	for _, row := range parsed.Rows {
		dates := row.Dates()
		if len(dates) == 0 {
			continue
		}
		touchedIDs = append(touchedIDs, row.ObjectiveID)
		for _, d := range dates {
			ascents = append(ascents, domain.Ascent{
				UserID:      userID,
				ObjectiveID: row.ObjectiveID,
				Date:        d,
				Source:      domain.AscentSourceImport,
			})
		}
	}

	var imported int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, bulkErr := s.ascents.BulkCreate(txCtx, ascents)
		if bulkErr != nil {
			return fmt.Errorf("bulk create ascents: %w", bulkErr)
		}
		imported = n
		return nil
	})
	if err != nil {
		metrics.RecordImport("failed")
		return ImportGridResult{}, err
	}
	metrics.RecordImport("success")

	if imported > 0 {
		s.invalidateLists(ctx, userID, touchedIDs...)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "grid imported", append(ctxutil.LogAttrs(ctx),
		slog.String("list_id", list.ID.String()),
		slog.Int("imported", imported),
		slog.Int("duplicates", len(ascents)-imported),
		slog.Int("skipped_rows", len(parsed.SkippedRows)),
		slog.Int("dropped_cells", len(parsed.Dropped)),
	)...)

	return ImportGridResult{
		Imported:     imported,
		Duplicates:   len(ascents) - imported,
		SkippedRows:  parsed.SkippedRows,
		DroppedCells: parsed.Dropped,
		Stats:        parsed.Stats,
	}, nil
}
