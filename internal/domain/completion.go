package domain

import "github.com/google/uuid"

// CompletionRecord is a user's raw ascent history for one objective.
// Dates are canonical strings, not guaranteed sorted or unique.
type CompletionRecord struct {
	ObjectiveID uuid.UUID
	Dates       []string
}

// ParsedDates returns the parseable dates of the record; malformed strings are skipped.
func (r CompletionRecord) ParsedDates() []Date {
	dates, _ := ParseDates(r.Dates)
	return dates
}

// VariantCompletion is the per-objective completion state, shaped by list variant.
// The implementations are StandardCompletion, WinterCompletion,
// FourSeasonCompletion and GridCompletion; consumers switch on the concrete type.
type VariantCompletion interface {
	Variant() ListVariant
	// Filled returns the number of populated slots.
	Filled() int

	isVariantCompletion()
}

// StandardCompletion holds the representative ascent of a Standard list.
type StandardCompletion struct {
	Date *Date
}

// WinterCompletion holds the representative winter ascent of a Winter list.
type WinterCompletion struct {
	Date *Date
}

// FourSeasonCompletion holds one representative ascent per season.
type FourSeasonCompletion struct {
	Winter *Date
	Spring *Date
	Summer *Date
	Fall   *Date
}

// GridCompletion holds one representative ascent per calendar month.
// Months[0] is January.
type GridCompletion struct {
	Months [12]*Date
}

func (StandardCompletion) Variant() ListVariant   { return ListVariantStandard }
func (WinterCompletion) Variant() ListVariant     { return ListVariantWinter }
func (FourSeasonCompletion) Variant() ListVariant { return ListVariantFourSeason }
func (GridCompletion) Variant() ListVariant       { return ListVariantGrid }

func (StandardCompletion) isVariantCompletion()   {}
func (WinterCompletion) isVariantCompletion()     {}
func (FourSeasonCompletion) isVariantCompletion() {}
func (GridCompletion) isVariantCompletion()       {}

func (c StandardCompletion) Filled() int { return countSet(c.Date) }
func (c WinterCompletion) Filled() int   { return countSet(c.Date) }

func (c FourSeasonCompletion) Filled() int {
	return countSet(c.Winter, c.Spring, c.Summer, c.Fall)
}

func (c GridCompletion) Filled() int {
	return countSet(c.Months[:]...)
}

// Season returns the slot for s, or nil for an unknown season.
func (c FourSeasonCompletion) Season(s Season) *Date {
	switch s {
	case SeasonWinter:
		return c.Winter
	case SeasonSpring:
		return c.Spring
	case SeasonSummer:
		return c.Summer
	case SeasonFall:
		return c.Fall
	}
	return nil
}

// Month returns the slot for month 1-12, or nil when out of range.
func (c GridCompletion) Month(month int) *Date {
	if month < 1 || month > 12 {
		return nil
	}
	return c.Months[month-1]
}

// EmptyCompletion returns the completion with no slots filled for v.
// ok is false for an unknown variant.
func EmptyCompletion(v ListVariant) (VariantCompletion, bool) {
	switch v {
	case ListVariantStandard:
		return StandardCompletion{}, true
	case ListVariantWinter:
		return WinterCompletion{}, true
	case ListVariantFourSeason:
		return FourSeasonCompletion{}, true
	case ListVariantGrid:
		return GridCompletion{}, true
	}
	return nil, false
}

// NormalizeCompletion returns the value form of c. Pointer forms are
// dereferenced; a nil pointer becomes a nil completion.
func NormalizeCompletion(c VariantCompletion) VariantCompletion {
	switch c := c.(type) {
	case *StandardCompletion:
		if c == nil {
			return nil
		}
		return *c
	case *WinterCompletion:
		if c == nil {
			return nil
		}
		return *c
	case *FourSeasonCompletion:
		if c == nil {
			return nil
		}
		return *c
	case *GridCompletion:
		if c == nil {
			return nil
		}
		return *c
	}
	return c
}

func countSet(dates ...*Date) int {
	n := 0
	for _, d := range dates {
		if d != nil {
			n++
		}
	}
	return n
}

// ProgressSummary aggregates completion across a list.
type ProgressSummary struct {
	CompletedCount int
	RequiredCount  int
	Percent        float64
}
