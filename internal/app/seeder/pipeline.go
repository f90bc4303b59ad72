package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// allPhases defines the canonical execution order. Lists reference
// objectives, so objectives go first.
var allPhases = []string{"objectives", "lists"}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Written  int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates catalog seeding.
type Pipeline struct {
	log     *slog.Logger
	repo    CatalogWriter
	tx      txManager
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo CatalogWriter, tx txManager, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		tx:      tx,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run loads the catalog file and executes the pipeline. If phases is
// non-empty, only the listed phases run. An invalid catalog fails before
// anything is written.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	if p.cfg.CatalogPath == "" {
		return fmt.Errorf("catalog path not configured")
	}

	cat, err := LoadCatalog(p.cfg.CatalogPath)
	if err != nil {
		return err
	}
	p.log.Info("catalog parsed",
		slog.Int("objectives", len(cat.Objectives)),
		slog.Int("lists", len(cat.Lists)),
	)

	return p.RunCatalog(ctx, cat, phases)
}

// RunCatalog writes an already parsed catalog.
func (p *Pipeline) RunCatalog(ctx context.Context, cat Catalog, phases []string) error {
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "objectives":
			result = p.runObjectives(ctx, cat)
		case "lists":
			result = p.runLists(ctx, cat)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("written", result.Written),
				slog.Int("skipped", result.Skipped),
				slog.Int("errors", result.Errors),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func (p *Pipeline) runObjectives(ctx context.Context, cat Catalog) PhaseResult {
	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(cat.Objectives)}
	}

	written, err := batchProcess(cat.Objectives, p.cfg.BatchSize, func(batch []domain.Objective) (int, error) {
		return p.repo.UpsertObjectives(ctx, batch)
	})
	if err != nil {
		return PhaseResult{Written: written, Err: fmt.Errorf("upsert objectives: %w", err)}
	}
	return PhaseResult{Written: written}
}

// runLists writes each list in its own transaction. A failing list is
// counted and logged; the others are still written.
func (p *Pipeline) runLists(ctx context.Context, cat Catalog) PhaseResult {
	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(cat.Lists)}
	}

	var result PhaseResult
	for _, list := range cat.Lists {
		err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
			return p.repo.ReplaceList(ctx, list)
		})
		if err != nil {
			result.Errors++
			p.log.Warn("list not written",
				slog.String("list", list.Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Written++
	}
	return result
}

// batchProcess splits items into batches and calls fn for each batch.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
