// Package progress aggregates per-objective completion into list progress.
package progress

import (
	"math"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// Multiplier returns the number of slots each objective contributes under v.
func Multiplier(v domain.ListVariant) int {
	return v.SlotCount()
}

// Summarize computes required count and percent for a list.
// Percent is rounded to one decimal place and is 0 when nothing is required.
func Summarize(v domain.ListVariant, objectiveCount, completedCount int) domain.ProgressSummary {
	required := objectiveCount * Multiplier(v)

	var percent float64
	if required > 0 {
		percent = math.Round(float64(completedCount)/float64(required)*1000) / 10
	}

	return domain.ProgressSummary{
		CompletedCount: completedCount,
		RequiredCount:  required,
		Percent:        percent,
	}
}

// SummarizeCompletions counts filled slots across completions and summarizes
// them against objectiveCount. Nil completions count as empty.
func SummarizeCompletions(v domain.ListVariant, objectiveCount int, completions []domain.VariantCompletion) domain.ProgressSummary {
	completed := 0
	for _, c := range completions {
		if c != nil {
			completed += c.Filled()
		}
	}
	return Summarize(v, objectiveCount, completed)
}

// IsFullyComplete reports whether every required slot is filled.
func IsFullyComplete(s domain.ProgressSummary) bool {
	return s.RequiredCount > 0 && s.CompletedCount == s.RequiredCount
}
