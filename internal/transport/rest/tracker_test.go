package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/summitlist-backend/internal/config"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

//go:generate moq -out tracker_service_mock_test.go -pkg rest . trackerService

var (
	testListID      = uuid.MustParse("6f1c2a9e-4a57-4f1e-9d3b-0c6b1d2e3f40")
	testObjectiveID = uuid.MustParse("0b7e8d4c-2f1a-4c3b-8e9d-5a6b7c8d9e0f")
	testUserID      = uuid.MustParse("9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d")
)

type stubValidator struct{}

func (stubValidator) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	if token == "good" {
		return testUserID, nil
	}
	return uuid.Nil, errors.New("bad token")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(svc trackerService, maxUpload int64) http.Handler {
	log := discardLogger()
	return NewRouter(RouterDeps{
		Tracker: NewTrackerHandler(svc, log, maxUpload),
		Health:  NewHealthHandler("test"),
		Tokens:  stubValidator{},
		Config:  config.Config{CORS: config.CORSConfig{AllowedOrigins: "*"}},
		Logger:  log,
	})
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func dateRef(s string) *domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func gridProgress() tracker.ListProgressResult {
	obj := domain.Objective{ID: testObjectiveID, Name: "Washington", Kind: domain.ObjectiveKindMountain}
	var grid domain.GridCompletion
	grid.Months[2] = dateRef("2021-03-15")
	return tracker.ListProgressResult{
		List: domain.List{
			ID:         testListID,
			Name:       "Grid",
			Variant:    domain.ListVariantGrid,
			Objectives: []domain.Objective{obj},
		},
		Summary: domain.ProgressSummary{CompletedCount: 1, RequiredCount: 12, Percent: 8.3},
		Objectives: []tracker.ObjectiveProgress{{
			Objective:  obj,
			Record:     domain.CompletionRecord{ObjectiveID: testObjectiveID, Dates: []string{"2021-03-15"}},
			Completion: grid,
			Position:   1,
			Color:      "#fee0d2",
			ByYear:     map[int]int{2021: 1},
		}},
	}
}

func TestListProgress_Success(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		ListProgressFunc: func(ctx context.Context, input tracker.ListProgressInput) (tracker.ListProgressResult, error) {
			userID, ok := ctxutil.UserIDFromCtx(ctx)
			require.True(t, ok)
			assert.Equal(t, testUserID, userID)
			return gridProgress(), nil
		},
	}

	target := "/api/lists/" + testListID.String() + "/progress?highlight=" + testObjectiveID.String() +
		"&season=spring&month=march&winter=2021&style=full"
	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodGet, target, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	calls := svc.ListProgressCalls()
	require.Len(t, calls, 1)
	in := calls[0].Input
	assert.Equal(t, testListID, in.ListID)
	require.NotNil(t, in.Highlight)
	assert.Equal(t, testObjectiveID, *in.Highlight)
	assert.Equal(t, domain.SeasonSpring, in.Context.Season)
	assert.Equal(t, 3, in.Context.Month)
	assert.Equal(t, 2021, in.Context.WinterOf)

	resp := decodeBody[struct {
		List    listResponse    `json:"list"`
		Summary summaryResponse `json:"summary"`
		Palette []string        `json:"palette"`
		Objects []struct {
			ID           string      `json:"id"`
			DisplayDates []string    `json:"displayDates"`
			Color        string      `json:"color"`
			Winters      []int       `json:"winters"`
			ByYear       map[int]int `json:"byYear"`
			Completion   struct {
				Type   string      `json:"type"`
				Months [12]*string `json:"months"`
			} `json:"completion"`
		} `json:"objectives"`
	}](t, rec)

	assert.Equal(t, "GRID", resp.List.Variant)
	assert.Len(t, resp.Palette, 13)
	assert.Equal(t, 1, resp.Summary.CompletedCount)
	assert.False(t, resp.Summary.Complete)
	require.Len(t, resp.Objects, 1)
	assert.Equal(t, []string{"March 15, 2021"}, resp.Objects[0].DisplayDates)
	assert.Equal(t, "GRID", resp.Objects[0].Completion.Type)
	require.NotNil(t, resp.Objects[0].Completion.Months[2])
	assert.Equal(t, "2021-03-15", *resp.Objects[0].Completion.Months[2])
	assert.Nil(t, resp.Objects[0].Completion.Months[0])
	assert.Equal(t, []int{}, resp.Objects[0].Winters)
	assert.Equal(t, map[int]int{2021: 1}, resp.Objects[0].ByYear)
}

func TestListProgress_NumericMonth(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		ListProgressFunc: func(context.Context, tracker.ListProgressInput) (tracker.ListProgressResult, error) {
			return gridProgress(), nil
		},
	}

	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodGet,
		"/api/lists/"+testListID.String()+"/progress?month=11", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 11, svc.ListProgressCalls()[0].Input.Context.Month)
}

func TestListProgress_InvalidQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "bad highlight", query: "highlight=nope", field: "highlight"},
		{name: "bad month", query: "month=Smarch", field: "month"},
		{name: "zero month", query: "month=0", field: "month"},
		{name: "month past december", query: "month=13", field: "month"},
		{name: "bad winter", query: "winter=last", field: "winter"},
		{name: "negative winter", query: "winter=-3", field: "winter"},
		{name: "bad style", query: "style=fancy", field: "style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &trackerServiceMock{}
			rec := serve(t, newTestRouter(svc, 1<<20), http.MethodGet,
				"/api/lists/"+testListID.String()+"/progress?"+tt.query, "")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeBody[errorResponse](t, rec)
			require.Len(t, resp.Fields, 1)
			assert.Equal(t, tt.field, resp.Fields[0].Field)
			assert.Empty(t, svc.ListProgressCalls())
		})
	}
}

func TestListProgress_BadListID(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestRouter(&trackerServiceMock{}, 1<<20), http.MethodGet, "/api/lists/abc/progress", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "list_id", resp.Fields[0].Field)
}

func TestListSummary_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: domain.ErrNotFound, status: http.StatusNotFound},
		{name: "unauthorized", err: domain.ErrUnauthorized, status: http.StatusUnauthorized},
		{name: "unexpected", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &trackerServiceMock{
				ListSummaryFunc: func(context.Context, uuid.UUID) (domain.ProgressSummary, error) {
					return domain.ProgressSummary{}, tt.err
				},
			}
			rec := serve(t, newTestRouter(svc, 1<<20), http.MethodGet,
				"/api/lists/"+testListID.String()+"/summary", "")

			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}

func TestListSummary_Complete(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		ListSummaryFunc: func(_ context.Context, listID uuid.UUID) (domain.ProgressSummary, error) {
			assert.Equal(t, testListID, listID)
			return domain.ProgressSummary{CompletedCount: 4, RequiredCount: 4, Percent: 100}, nil
		},
	}
	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodGet, "/api/lists/"+testListID.String()+"/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[summaryResponse](t, rec)
	assert.True(t, resp.Complete)
	assert.InDelta(t, 100.0, resp.Percent, 0.001)
}

func TestObjectiveCompletion_FourSeason(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		ObjectiveCompletionFunc: func(_ context.Context, listID, objectiveID uuid.UUID) (tracker.ObjectiveProgress, error) {
			assert.Equal(t, testListID, listID)
			assert.Equal(t, testObjectiveID, objectiveID)
			return tracker.ObjectiveProgress{
				Objective:  domain.Objective{ID: objectiveID, Name: "Adams", Kind: domain.ObjectiveKindMountain},
				Record:     domain.CompletionRecord{ObjectiveID: objectiveID, Dates: []string{"2020-01-10", "2020-07-04"}},
				Completion: domain.FourSeasonCompletion{Winter: dateRef("2020-01-10"), Summer: dateRef("2020-07-04")},
				Position:   2,
			}, nil
		},
	}

	target := "/api/lists/" + testListID.String() + "/objectives/" + testObjectiveID.String() + "?style=short"
	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodGet, target, "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[struct {
		DisplayDates []string                     `json:"displayDates"`
		Completion   fourSeasonCompletionResponse `json:"completion"`
	}](t, rec)
	assert.Equal(t, []string{"1/10/2020", "7/4/2020"}, resp.DisplayDates)
	assert.Equal(t, "FOUR_SEASON", resp.Completion.Type)
	require.NotNil(t, resp.Completion.Winter)
	assert.Equal(t, "2020-01-10", *resp.Completion.Winter)
	assert.Nil(t, resp.Completion.Spring)
}

func TestLogAscent_AcceptsNumbersAndStrings(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		LogAscentFunc: func(_ context.Context, input tracker.LogAscentInput) (domain.CompletionRecord, error) {
			return domain.CompletionRecord{ObjectiveID: input.ObjectiveID, Dates: []string{"2021-03-15"}}, nil
		},
	}

	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodPost,
		"/api/objectives/"+testObjectiveID.String()+"/ascents",
		`{"day": 15, "month": "3", "year": "2021"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	calls := svc.LogAscentCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tracker.LogAscentInput{ObjectiveID: testObjectiveID, Day: "15", Month: "3", Year: "2021"}, calls[0].Input)

	resp := decodeBody[recordResponse](t, rec)
	assert.Equal(t, testObjectiveID.String(), resp.ObjectiveID)
	assert.Equal(t, []string{"2021-03-15"}, resp.Dates)
}

func TestLogAscent_BadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "day=1"},
		{name: "unknown field", body: `{"day":1,"month":1,"year":2020,"note":"x"}`},
		{name: "boolean field", body: `{"day":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &trackerServiceMock{}
			rec := serve(t, newTestRouter(svc, 1<<20), http.MethodPost,
				"/api/objectives/"+testObjectiveID.String()+"/ascents", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.LogAscentCalls())
		})
	}
}

func TestLogAscent_ValidationFields(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		LogAscentFunc: func(context.Context, tracker.LogAscentInput) (domain.CompletionRecord, error) {
			return domain.CompletionRecord{}, domain.NewValidationErrors([]domain.FieldError{
				{Field: "day", Message: "required"},
				{Field: "year", Message: "must be between 1900 and 2027"},
			})
		},
	}

	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodPost,
		"/api/objectives/"+testObjectiveID.String()+"/ascents", `{"month":"3","year":"1800"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "day", resp.Fields[0].Field)
	assert.Equal(t, "year", resp.Fields[1].Field)
}

func TestDeleteAscent(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		DeleteAscentFunc: func(context.Context, tracker.DeleteAscentInput) error { return nil },
	}

	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodDelete,
		"/api/objectives/"+testObjectiveID.String()+"/ascents/2021-03-15", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	calls := svc.DeleteAscentCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tracker.DeleteAscentInput{ObjectiveID: testObjectiveID, Date: "2021-03-15"}, calls[0].Input)
}

func TestDeleteAscent_NotFound(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		DeleteAscentFunc: func(context.Context, tracker.DeleteAscentInput) error { return domain.ErrNotFound },
	}

	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodDelete,
		"/api/objectives/"+testObjectiveID.String()+"/ascents/2021-03-15", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportGrid_Success(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		ImportGridFunc: func(_ context.Context, input tracker.ImportGridInput) (tracker.ImportGridResult, error) {
			return tracker.ImportGridResult{
				Imported:     2,
				Duplicates:   1,
				SkippedRows:  []string{"Unknown Peak"},
				DroppedCells: []gridimport.CellError{{Row: 2, Column: 3, Name: "Adams", Raw: "30/21", Reason: "invalid date"}},
			}, nil
		},
	}

	body := "Name,Jan,Feb\nWashington,1/15/21,\n"
	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/lists/"+testListID.String()+"/import", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	calls := svc.ImportGridCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, testListID, calls[0].Input.ListID)
	assert.Equal(t, [][]string{{"Name", "Jan", "Feb"}, {"Washington", "1/15/21", ""}}, calls[0].Input.Table)

	resp := decodeBody[importResponse](t, rec)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Equal(t, []string{"Unknown Peak"}, resp.SkippedRows)
	require.Len(t, resp.DroppedCells, 1)
	assert.Equal(t, "30/21", resp.DroppedCells[0].Raw)
}

func TestImportGrid_Structural(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		ImportGridFunc: func(context.Context, tracker.ImportGridInput) (tracker.ImportGridResult, error) {
			return tracker.ImportGridResult{}, &domain.StructuralError{What: "columns", Expected: "14", Actual: "3"}
		},
	}

	rec := serve(t, newTestRouter(svc, 1<<20), http.MethodPost,
		"/api/lists/"+testListID.String()+"/import", "a,b,c\n")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	require.NotNil(t, resp.Structure)
	assert.Equal(t, "columns", resp.Structure.What)
	assert.Equal(t, "14", resp.Structure.Expected)
}

func TestImportGrid_TableLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		maxUpload int64
		body      string
		status    int
	}{
		{name: "body too large", maxUpload: 16, body: strings.Repeat("Washington,1/1/21\n", 4), status: http.StatusRequestEntityTooLarge},
		{name: "too many rows", maxUpload: 1 << 20, body: strings.Repeat("x\n", gridimport.MaxTableRows+1), status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &trackerServiceMock{}
			rec := serve(t, newTestRouter(svc, tt.maxUpload), http.MethodPost,
				"/api/lists/"+testListID.String()+"/import", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, svc.ImportGridCalls())
		})
	}
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{}
	req := httptest.NewRequest(http.MethodGet, "/api/lists/"+testListID.String()+"/summary", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	newTestRouter(svc, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.ListSummaryCalls())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestRouter(&trackerServiceMock{}, 1<<20), http.MethodPut,
		"/api/lists/"+testListID.String()+"/summary", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
