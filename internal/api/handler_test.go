package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horario/internal/schedule"
	"horario/internal/session"
	"horario/views/models"
)

func newTestHandler() *Handler {
	registry := session.NewRegistry(time.Hour, func() *schedule.Service {
		return schedule.NewService(schedule.NewStore(schedule.DefaultSeed()))
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(registry, logger, 7, 21)
}

// do runs one handler call, carrying the session cookie across calls.
func do(t *testing.T, fn http.HandlerFunc, method, target, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	fn(rr, req)
	if got := rr.Result().Cookies(); len(got) > 0 {
		cookies = got
	}
	return rr, cookies
}

func TestAddActivityCreated(t *testing.T) {
	h := newTestHandler()

	body := `{"day":"Jueves","title":"Tutoría","start":"17:00","end":"18:30","location":"Sala 2","note":""}`
	rr, cookies := do(t, h.AddActivity, http.MethodPost, "/api/activities", body, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var got schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Tutoría", got.Title)

	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", cookies)
	var list []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 4) // three seeded plus the new one
	assert.Equal(t, got, list[3])
}

func TestAddActivityInvalidRange(t *testing.T) {
	h := newTestHandler()

	body := `{"day":"Lunes","title":"X","start":"10:00","end":"09:00"}`
	rr, cookies := do(t, h.AddActivity, http.MethodPost, "/api/activities", body, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "la hora de fin debe ser mayor que la de inicio", resp["error"])

	// The rejected submission left the store unchanged.
	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", cookies)
	var list []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 3)
}

func TestAddActivityBadInput(t *testing.T) {
	h := newTestHandler()

	cases := map[string]string{
		"unknown day":    `{"day":"Monday","title":"X","start":"09:00","end":"10:00"}`,
		"malformed time": `{"day":"Lunes","title":"X","start":"nine","end":"10:00"}`,
		"not json":       `día=Lunes`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr, _ := do(t, h.AddActivity, http.MethodPost, "/api/activities", body, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestClearActivities(t *testing.T) {
	h := newTestHandler()

	rr, cookies := do(t, h.ClearActivities, http.MethodDelete, "/api/activities", "", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", cookies)
	var list []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestGridDefaultsAndClamping(t *testing.T) {
	h := newTestHandler()

	rr, cookies := do(t, h.Grid, http.MethodGet, "/api/grid", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var grid models.GridView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	require.Len(t, grid.Rows, 14) // default range [7,21)
	assert.Equal(t, "07:00", grid.Rows[0].Label)
	assert.Equal(t, "20:00", grid.Rows[13].Label)

	// Out-of-bound hours clamp to [5,12] and [13,23].
	rr, _ = do(t, h.Grid, http.MethodGet, "/api/grid?start_hour=2&end_hour=99", "", cookies)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	assert.Equal(t, 5, grid.Rows[0].Hour)
	assert.Equal(t, 22, grid.Rows[len(grid.Rows)-1].Hour)

	// Junk values fall back to the defaults.
	rr, _ = do(t, h.Grid, http.MethodGet, "/api/grid?start_hour=abc", "", cookies)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	assert.Equal(t, 7, grid.Rows[0].Hour)
}

func TestGridPlacesSeededChips(t *testing.T) {
	h := newTestHandler()

	rr, _ := do(t, h.Grid, http.MethodGet, "/api/grid", "", nil)
	var grid models.GridView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))

	// Seeded "Oficina PLE" (Viernes 10:30–12:00) lands in rows 10 and 11.
	found := map[int]bool{}
	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			for _, chip := range cell.Chips {
				if chip.Title == "Oficina PLE" {
					require.Equal(t, "Viernes", cell.Day)
					found[row.Hour] = true
				}
			}
		}
	}
	assert.Equal(t, map[int]bool{10: true, 11: true}, found)
}

func TestExportDownload(t *testing.T) {
	h := newTestHandler()

	rr, _ := do(t, h.Export, http.MethodGet, "/api/export", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="horario.json"`, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "Reunión equipo")

	acts, err := schedule.ImportJSON(rr.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, acts, 3)
}

func TestImportRoundTrip(t *testing.T) {
	h := newTestHandler()

	rr, cookies := do(t, h.Export, http.MethodGet, "/api/export", "", nil)
	exported := rr.Body.String()

	// Clear, then restore from the exported document.
	_, cookies = do(t, h.ClearActivities, http.MethodDelete, "/api/activities", "", cookies)
	rr, cookies = do(t, h.Import, http.MethodPost, "/api/import", exported, cookies)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", cookies)
	var list []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "PLE B1", list[0].Title)
}

func TestImportRejectsBadDocument(t *testing.T) {
	h := newTestHandler()

	rr, cookies := do(t, h.Import, http.MethodPost, "/api/import",
		`[{"day":"Lunes","title":"X","start":"10:00","end":"10:00"}]`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", cookies)
	var list []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 3)
}

func TestSessionsAreIsolatedPerCookie(t *testing.T) {
	h := newTestHandler()

	// Two callers without cookies get independent schedules.
	rr, cookiesA := do(t, h.ClearActivities, http.MethodDelete, "/api/activities", "", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotEmpty(t, cookiesA)

	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", nil)
	var other []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &other))
	assert.Len(t, other, 3)

	rr, _ = do(t, h.ListActivities, http.MethodGet, "/api/activities", "", cookiesA)
	var mine []schedule.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mine))
	assert.Empty(t, mine)
}
