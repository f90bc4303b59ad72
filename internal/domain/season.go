package domain

import "strings"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ClassifySeason maps a date to its meteorological season.
// Dates with an out-of-range month are classified by month modulo 12 so the
// function stays total.
func ClassifySeason(d Date) Season {
	switch normalizeMonth(d.Month) {
	case 12, 1, 2:
		return SeasonWinter
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// WinterSeasonYear returns the year in which the winter containing d ends:
// December of Y belongs to winter Y+1, January and February of Y to winter Y.
// ok is false when d is not a winter date.
func WinterSeasonYear(d Date) (year int, ok bool) {
	switch normalizeMonth(d.Month) {
	case 12:
		return d.Year + 1, true
	case 1, 2:
		return d.Year, true
	}
	return 0, false
}

// MonthIndex resolves a full English month name (any case) to 1-12.
func MonthIndex(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, m := range monthNames {
		if strings.EqualFold(m, name) {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthName returns the English name of month 1-12, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

func normalizeMonth(m int) int {
	m %= 12
	if m <= 0 {
		m += 12
	}
	return m
}
