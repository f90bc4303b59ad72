package rest

import (
	"bytes"
	"encoding/json"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker/progress"
)

type logAscentRequest struct {
	Day   fieldValue `json:"day"`
	Month fieldValue `json:"month"`
	Year  fieldValue `json:"year"`
}

// fieldValue accepts a JSON string or number and keeps its text. Date fields
// are validated by the service, not by the decoder.
type fieldValue string

func (v *fieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = fieldValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = fieldValue(n.String())
	}
	return nil
}

type recordResponse struct {
	ObjectiveID string   `json:"objectiveId"`
	Dates       []string `json:"dates"`
}

type summaryResponse struct {
	CompletedCount int     `json:"completedCount"`
	RequiredCount  int     `json:"requiredCount"`
	Percent        float64 `json:"percent"`
	Complete       bool    `json:"complete"`
}

type listResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

type listProgressResponse struct {
	List       listResponse        `json:"list"`
	Summary    summaryResponse     `json:"summary"`
	Palette    []string            `json:"palette"`
	Objectives []objectiveResponse `json:"objectives"`
}

type objectiveResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Kind         string      `json:"kind"`
	Dates        []string    `json:"dates"`
	DisplayDates []string    `json:"displayDates,omitempty"`
	Completion   any         `json:"completion"`
	Position     int         `json:"position"`
	Color        string      `json:"color"`
	Highlighted  bool        `json:"highlighted,omitempty"`
	Winters      []int       `json:"winters"`
	ByYear       map[int]int `json:"byYear,omitempty"`
}

// Completion payloads carry a "type" discriminator matching the list variant.

type singleCompletionResponse struct {
	Type string  `json:"type"`
	Date *string `json:"date"`
}

type fourSeasonCompletionResponse struct {
	Type   string  `json:"type"`
	Winter *string `json:"winter"`
	Spring *string `json:"spring"`
	Summer *string `json:"summer"`
	Fall   *string `json:"fall"`
}

type gridCompletionResponse struct {
	Type   string      `json:"type"`
	Months [12]*string `json:"months"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Duplicates   int                   `json:"duplicates"`
	SkippedRows  []string              `json:"skippedRows"`
	DroppedCells []droppedCellResponse `json:"droppedCells"`
}

type droppedCellResponse struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Name   string `json:"name"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

func toRecordResponse(rec domain.CompletionRecord) recordResponse {
	dates := rec.Dates
	if dates == nil {
		dates = []string{}
	}
	return recordResponse{ObjectiveID: rec.ObjectiveID.String(), Dates: dates}
}

func toSummaryResponse(s domain.ProgressSummary) summaryResponse {
	return summaryResponse{
		CompletedCount: s.CompletedCount,
		RequiredCount:  s.RequiredCount,
		Percent:        s.Percent,
		Complete:       progress.IsFullyComplete(s),
	}
}

func toObjectiveResponse(op tracker.ObjectiveProgress, style domain.DateStyle) objectiveResponse {
	resp := objectiveResponse{
		ID:          op.Objective.ID.String(),
		Name:        op.Objective.Name,
		Kind:        op.Objective.Kind.String(),
		Dates:       toRecordResponse(op.Record).Dates,
		Completion:  toCompletionResponse(op.Completion),
		Position:    op.Position,
		Color:       op.Color,
		Highlighted: op.Highlighted,
		Winters:     op.Winters,
		ByYear:      op.ByYear,
	}
	if resp.Winters == nil {
		resp.Winters = []int{}
	}
	if style != "" {
		dates := domain.UniqueDates(op.Record.ParsedDates())
		resp.DisplayDates = make([]string, len(dates))
		for i, d := range dates {
			resp.DisplayDates[i] = d.Format(style)
		}
	}
	return resp
}

func toCompletionResponse(c domain.VariantCompletion) any {
	switch c := domain.NormalizeCompletion(c).(type) {
	case domain.StandardCompletion:
		return singleCompletionResponse{Type: c.Variant().String(), Date: dateString(c.Date)}
	case domain.WinterCompletion:
		return singleCompletionResponse{Type: c.Variant().String(), Date: dateString(c.Date)}
	case domain.FourSeasonCompletion:
		return fourSeasonCompletionResponse{
			Type:   c.Variant().String(),
			Winter: dateString(c.Winter),
			Spring: dateString(c.Spring),
			Summer: dateString(c.Summer),
			Fall:   dateString(c.Fall),
		}
	case domain.GridCompletion:
		resp := gridCompletionResponse{Type: c.Variant().String()}
		for i, d := range c.Months {
			resp.Months[i] = dateString(d)
		}
		return resp
	}
	return nil
}

func toImportResponse(res tracker.ImportGridResult) importResponse {
	resp := importResponse{
		Imported:     res.Imported,
		Duplicates:   res.Duplicates,
		SkippedRows:  res.SkippedRows,
		DroppedCells: make([]droppedCellResponse, len(res.DroppedCells)),
	}
	if resp.SkippedRows == nil {
		resp.SkippedRows = []string{}
	}
	for i, c := range res.DroppedCells {
		resp.DroppedCells[i] = toDroppedCell(c)
	}
	return resp
}

func toDroppedCell(c gridimport.CellError) droppedCellResponse {
	return droppedCellResponse{Row: c.Row, Column: c.Column, Name: c.Name, Raw: c.Raw, Reason: c.Reason}
}

func dateString(d *domain.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
