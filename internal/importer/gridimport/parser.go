// Package gridimport parses an externally authored "grid" spreadsheet: one row
// per objective, one column per month, into per-month ascent dates.
// Pure function over the table: no database, no network.
package gridimport

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

const (
	// DefaultRows is the fixed roster size of the export.
	DefaultRows = 52
	// DefaultColumns is name + 12 months + total.
	DefaultColumns = 14
	// DefaultSentinel is the objective name expected in the first row.
	DefaultSentinel = "Washington"
	// DefaultSeparators split free-text cells into tokens.
	DefaultSeparators = "/-.,' \t"

	firstMonthColumn = 1
)

// Options controls table shape checks and cell parsing.
type Options struct {
	Rows       int
	Columns    int
	Sentinel   string
	Separators string
	Rules      domain.DateRules
	// CurrentYear drives the two-digit year pivot.
	CurrentYear int
}

// DefaultOptions returns the options for the standard export as of now.
func DefaultOptions(now time.Time) Options {
	return Options{
		Rows:        DefaultRows,
		Columns:     DefaultColumns,
		Sentinel:    DefaultSentinel,
		Separators:  DefaultSeparators,
		Rules:       domain.DefaultDateRules(now),
		CurrentYear: now.Year(),
	}
}

// Row holds the parsed dates of one matched objective.
type Row struct {
	ObjectiveID uuid.UUID
	Name        string
	Months      [12]*domain.Date // Months[0] is January
}

// Dates returns the parsed dates of the row in month order.
func (r Row) Dates() []domain.Date {
	var out []domain.Date
	for _, d := range r.Months {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Record converts the row to the raw completion record shape.
func (r Row) Record() domain.CompletionRecord {
	dates := r.Dates()
	rec := domain.CompletionRecord{ObjectiveID: r.ObjectiveID, Dates: make([]string, len(dates))}
	for i, d := range dates {
		rec.Dates[i] = d.String()
	}
	return rec
}

// CellError describes a cell that looked like a date but failed validation.
type CellError struct {
	Row    int // 0-based table row
	Column int // 0-based table column
	Name   string
	Raw    string
	Reason string
}

// Stats holds parser statistics for logging.
type Stats struct {
	Cells        int
	Parsed       int
	Empty        int
	Unrecognized int
	Dropped      int
}

// Result is the outcome of a successful structural parse.
type Result struct {
	Rows        []Row
	SkippedRows []string // names with no roster match
	Dropped     []CellError
	Stats       Stats
}

// Records returns one completion record per row that has at least one date.
func (r Result) Records() []domain.CompletionRecord {
	var out []domain.CompletionRecord
	for _, row := range r.Rows {
		if rec := row.Record(); len(rec.Dates) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

// Parser parses grid tables. It keeps no state between calls.
type Parser struct {
	opts Options
	log  *slog.Logger
}

// NewParser creates a Parser. Zero-valued option fields fall back to defaults.
func NewParser(log *slog.Logger, opts Options) *Parser {
	def := DefaultOptions(time.Now())
	if opts.Rows <= 0 {
		opts.Rows = def.Rows
	}
	if opts.Columns <= 0 {
		opts.Columns = def.Columns
	}
	if opts.Sentinel == "" {
		opts.Sentinel = def.Sentinel
	}
	if opts.Separators == "" {
		opts.Separators = def.Separators
	}
	if opts.Rules == (domain.DateRules{}) {
		opts.Rules = def.Rules
	}
	if opts.CurrentYear == 0 {
		opts.CurrentYear = def.CurrentYear
	}
	return &Parser{opts: opts, log: log.With("component", "gridimport")}
}

// Parse validates the table shape, then parses every month cell of every row
// whose name is in roster. Shape problems return a *domain.StructuralError
// before any cell is parsed. Bad cells are dropped, not fatal.
func (p *Parser) Parse(table [][]string, roster map[string]uuid.UUID) (Result, error) {
	if err := p.checkShape(table); err != nil {
		return Result{}, err
	}

	var result Result
	for i, rec := range table {
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		id, ok := roster[name]
		if !ok {
			result.SkippedRows = append(result.SkippedRows, name)
			continue
		}

		row := Row{ObjectiveID: id, Name: name}
		for month := 1; month <= 12; month++ {
			col := firstMonthColumn + month - 1
			raw := rec[col]
			result.Stats.Cells++

			date, found, reason := p.parseCell(raw, month)
			switch {
			case reason != "":
				result.Stats.Dropped++
				result.Dropped = append(result.Dropped, CellError{
					Row: i, Column: col, Name: name, Raw: raw, Reason: reason,
				})
				p.log.Debug("dropped grid cell",
					slog.String("objective", name),
					slog.String("month", domain.MonthName(month)),
					slog.String("raw", raw),
					slog.String("reason", reason),
				)
			case !found && strings.TrimSpace(raw) == "":
				result.Stats.Empty++
			case !found:
				result.Stats.Unrecognized++
			default:
				result.Stats.Parsed++
				row.Months[month-1] = &date
			}
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

func (p *Parser) checkShape(table [][]string) error {
	if len(table) != p.opts.Rows {
		return &domain.StructuralError{
			What:     "row count",
			Expected: strconv.Itoa(p.opts.Rows),
			Actual:   strconv.Itoa(len(table)),
		}
	}
	for i, rec := range table {
		if len(rec) != p.opts.Columns {
			return &domain.StructuralError{
				What:     fmt.Sprintf("column count in row %d", i+1),
				Expected: strconv.Itoa(p.opts.Columns),
				Actual:   strconv.Itoa(len(rec)),
			}
		}
	}
	if first := strings.TrimSpace(table[0][0]); first != p.opts.Sentinel {
		return &domain.StructuralError{
			What:     "first objective",
			Expected: strconv.Quote(p.opts.Sentinel),
			Actual:   strconv.Quote(first),
		}
	}
	return nil
}

// parseCell extracts a day and year from a free-text cell; the month comes
// from the column. found is false when the cell does not hold exactly two
// numeric tokens. A non-empty reason means the cell held two numbers that do
// not form a valid date.
func (p *Parser) parseCell(raw string, month int) (date domain.Date, found bool, reason string) {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(p.opts.Separators, r)
	})

	var numeric []string
	for _, tok := range tokens {
		if isDigits(tok) {
			numeric = append(numeric, tok)
		}
	}
	if len(numeric) != 2 {
		return domain.Date{}, false, ""
	}

	day, err := strconv.Atoi(numeric[0])
	if err != nil {
		return domain.Date{}, false, "day out of range"
	}
	year, ok := PivotYear(numeric[1], p.opts.CurrentYear)
	if !ok {
		return domain.Date{}, false, fmt.Sprintf("year %q has %d digits", numeric[1], len(numeric[1]))
	}

	date = domain.Date{Day: day, Month: month, Year: year}
	if err := p.opts.Rules.Check(date); err != nil {
		return domain.Date{}, false, err.Error()
	}
	return date, true, ""
}

// PivotYear expands a year token. One- and two-digit years yy become 20yy
// when yy <= currentYear-2000 and 19yy otherwise; four-digit years are taken
// as written. Other lengths are rejected.
func PivotYear(tok string, currentYear int) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	switch len(tok) {
	case 1, 2:
		if n <= currentYear-2000 {
			return 2000 + n, true
		}
		return 1900 + n, true
	case 4:
		return n, true
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
