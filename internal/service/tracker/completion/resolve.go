// Package completion resolves raw ascent dates into variant-shaped completion.
// Pure functions: no state, no I/O, safe for concurrent use.
//
// When several dates fall into the same slot the earliest one is kept.
package completion

import (
	"slices"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// Context narrows the candidate dates before they are assigned to slots.
// Zero fields apply no restriction.
type Context struct {
	Season domain.Season // only dates classified into this season
	Month  int           // only dates in this calendar month (1-12)

	// WinterOf restricts candidates to the winter ending in this year:
	// December of WinterOf-1 through February of WinterOf. Non-winter
	// dates are excluded when it is set.
	WinterOf int
}

// IsZero reports whether c applies no restriction.
func (c Context) IsZero() bool { return c == Context{} }

// Resolve assigns dates to the slots of variant. Absence is an empty slot,
// never an error. An unknown variant yields nil.
func Resolve(variant domain.ListVariant, dates []domain.Date, ctx Context) domain.VariantCompletion {
	candidates := filter(dates, ctx)

	switch variant {
	case domain.ListVariantStandard:
		return domain.StandardCompletion{Date: earliest(candidates)}

	case domain.ListVariantWinter:
		var winter []domain.Date
		for _, d := range candidates {
			if domain.ClassifySeason(d) == domain.SeasonWinter {
				winter = append(winter, d)
			}
		}
		return domain.WinterCompletion{Date: earliest(winter)}

	case domain.ListVariantFourSeason:
		var c domain.FourSeasonCompletion
		for _, d := range candidates {
			switch domain.ClassifySeason(d) {
			case domain.SeasonWinter:
				c.Winter = keepEarlier(c.Winter, d)
			case domain.SeasonSpring:
				c.Spring = keepEarlier(c.Spring, d)
			case domain.SeasonSummer:
				c.Summer = keepEarlier(c.Summer, d)
			case domain.SeasonFall:
				c.Fall = keepEarlier(c.Fall, d)
			}
		}
		return c

	case domain.ListVariantGrid:
		var c domain.GridCompletion
		for _, d := range candidates {
			if d.Month < 1 || d.Month > 12 {
				continue
			}
			c.Months[d.Month-1] = keepEarlier(c.Months[d.Month-1], d)
		}
		return c
	}

	return nil
}

// ResolveRecord parses the record's canonical dates and resolves them.
// Unparseable strings are ignored.
func ResolveRecord(variant domain.ListVariant, record domain.CompletionRecord, ctx Context) domain.VariantCompletion {
	return Resolve(variant, record.ParsedDates(), ctx)
}

// ByCalendarYear resolves each calendar year of history on its own.
// December and the following January fall into different years here.
func ByCalendarYear(variant domain.ListVariant, dates []domain.Date) map[int]domain.VariantCompletion {
	byYear := make(map[int][]domain.Date)
	for _, d := range dates {
		byYear[d.Year] = append(byYear[d.Year], d)
	}

	out := make(map[int]domain.VariantCompletion, len(byYear))
	for year, ds := range byYear {
		out[year] = Resolve(variant, ds, Context{})
	}
	return out
}

// WinterInstances returns the distinct winters with at least one ascent,
// keyed by the year each winter ends, ascending. A December ascent and a
// January ascent a few weeks later count as one winter.
func WinterInstances(dates []domain.Date) []int {
	var years []int
	for _, d := range dates {
		if y, ok := domain.WinterSeasonYear(d); ok {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return slices.Compact(years)
}

func filter(dates []domain.Date, ctx Context) []domain.Date {
	if ctx.IsZero() {
		return dates
	}

	out := make([]domain.Date, 0, len(dates))
	for _, d := range dates {
		if ctx.Season != "" && domain.ClassifySeason(d) != ctx.Season {
			continue
		}
		if ctx.Month != 0 && d.Month != ctx.Month {
			continue
		}
		if ctx.WinterOf != 0 {
			if y, ok := domain.WinterSeasonYear(d); !ok || y != ctx.WinterOf {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func earliest(dates []domain.Date) *domain.Date {
	var best *domain.Date
	for _, d := range dates {
		best = keepEarlier(best, d)
	}
	return best
}

func keepEarlier(current *domain.Date, candidate domain.Date) *domain.Date {
	if current == nil || domain.CompareDates(candidate, *current) < 0 {
		return &candidate
	}
	return current
}
