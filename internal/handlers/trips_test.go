package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route66/trip-service/internal/directory"
	"github.com/route66/trip-service/internal/itinerary"
	"github.com/route66/trip-service/internal/middleware"
)

const testAPIKey = "test-key"

type fakeRefresher struct {
	n   int
	err error
}

func (f *fakeRefresher) Refresh(ctx context.Context) (int, error) { return f.n, f.err }

type failingDirectory struct{ err error }

func (f failingDirectory) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	return nil, f.err
}

func newTestRouter(t *testing.T, dir itinerary.StopDirectory, refresher Refresher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if dir == nil {
		seed, err := directory.Route66()
		require.NoError(t, err)
		dir = seed
	}
	builder := itinerary.NewBuilder(itinerary.NewOptimizer(itinerary.Defaults(), nil, nil))
	h := NewTripHandler(builder, dir, refresher, 5*time.Second)

	r := gin.New()
	r.Use(middleware.RequestID())
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuth(testAPIKey))
	h.Register(r.Group("/api"), internal)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestPlanTrip_SingleDay(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := postJSON(r, "/api/trips/plan", PlanRequest{StartCity: "Chicago, IL", EndCity: "St. Louis, MO", Days: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[PlanResponse](t, w)
	assert.NotEmpty(t, resp.RequestID)
	require.NotNil(t, resp.Result)
	plan := resp.Result.FinalPlan
	assert.Equal(t, 1, plan.TotalDays)
	assert.False(t, plan.WasAdjusted)
	require.Len(t, plan.Segments, 1)
	assert.Equal(t, "Chicago, IL", plan.Segments[0].StartCity)
	assert.Equal(t, "St. Louis, MO", plan.Segments[0].EndCity)
}

func TestPlanTrip_LongTrip(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := postJSON(r, "/api/trips/plan", PlanRequest{StartCity: "Chicago, IL", EndCity: "Santa Monica, CA", Days: 7, Style: "adventurous"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	plan := decode[PlanResponse](t, w).Result.FinalPlan
	assert.Equal(t, itinerary.StyleAdventurous, plan.Style)
	for i, seg := range plan.Segments {
		assert.Equal(t, i+1, seg.Day)
		assert.LessOrEqual(t, seg.DriveTimeHours, 8.0)
	}
}

func TestPlanTrip_Errors(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	tests := []struct {
		name   string
		body   any
		status int
		field  string
	}{
		{"unknown start", PlanRequest{StartCity: "Atlantis", EndCity: "St. Louis, MO", Days: 2}, http.StatusNotFound, ""},
		{"same city", PlanRequest{StartCity: "Chicago, IL", EndCity: "Chicago, IL", Days: 2}, http.StatusBadRequest, "endCity"},
		{"bad style", PlanRequest{StartCity: "Chicago, IL", EndCity: "St. Louis, MO", Days: 2, Style: "speedrun"}, http.StatusBadRequest, "style"},
		{"negative days", PlanRequest{StartCity: "Chicago, IL", EndCity: "St. Louis, MO", Days: -2}, http.StatusBadRequest, "requestedDays"},
		{"missing days", map[string]string{"startCity": "Chicago, IL", "endCity": "St. Louis, MO"}, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/trips/plan", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decode[ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestPlanTrip_DirectoryUnavailable(t *testing.T) {
	dir := failingDirectory{err: fmt.Errorf("%w: connection refused", directory.ErrSourceUnavailable)}
	r := newTestRouter(t, dir, nil)

	w := postJSON(r, "/api/trips/plan", PlanRequest{StartCity: "Chicago, IL", EndCity: "St. Louis, MO", Days: 1})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPlanTrip_InternalErrorHidden(t *testing.T) {
	r := newTestRouter(t, failingDirectory{err: errors.New("pq: password authentication failed")}, nil)

	w := postJSON(r, "/api/trips/plan", PlanRequest{StartCity: "Chicago, IL", EndCity: "St. Louis, MO", Days: 1})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decode[ErrorResponse](t, w).Error)
}

func TestCheckFeasibility(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := postJSON(r, "/api/trips/feasibility", FeasibilityRequest{StartCity: "Chicago, IL", EndCity: "Santa Monica, CA", Days: 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decode[itinerary.FeasibilityResult](t, w)
	assert.False(t, result.IsFeasible)
	assert.Greater(t, result.RecommendedDays, 3)
	assert.NotEmpty(t, result.Issues)
}

func TestCompareDayCounts(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := postJSON(r, "/api/trips/compare", CompareRequest{StartCity: "Chicago, IL", EndCity: "Santa Monica, CA", Days: []int{7, 5, 10}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[CompareResponse](t, w)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 7, resp.Results[0].RequestedDays)
	assert.Equal(t, 5, resp.Results[1].RequestedDays)
	assert.Equal(t, 10, resp.Results[2].RequestedDays)

	w = postJSON(r, "/api/trips/compare", CompareRequest{StartCity: "Chicago, IL", EndCity: "Santa Monica, CA", Days: []int{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportTrip(t *testing.T) {
	r := newTestRouter(t, nil, nil)
	body := ExportRequest{
		PlanRequest: PlanRequest{StartCity: "Chicago, IL", EndCity: "St. Louis, MO", Days: 1},
		StartDate:   "2026-06-01",
	}

	w := postJSON(r, "/api/trips/export/ics", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "chicago-il-to-st-louis-mo-1d.ics")
	assert.Contains(t, w.Body.String(), "DTSTART;VALUE=DATE:20260601")

	w = postJSON(r, "/api/trips/export/xlsx", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())

	w = postJSON(r, "/api/trips/export/pdf", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body.StartDate = "June 1st"
	w = postJSON(r, "/api/trips/export/ics", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startDate", decode[ErrorResponse](t, w).Field)
}

func TestListStops(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := get(r, "/api/stops")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[StopsResponse](t, w)

	w = get(r, "/api/stops?category=destination")
	require.Equal(t, http.StatusOK, w.Code)
	destinations := decode[StopsResponse](t, w)
	assert.Equal(t, 25, destinations.Total)
	assert.Less(t, destinations.Total, all.Total)
	for _, s := range destinations.Stops {
		assert.Equal(t, itinerary.CategoryDestination, s.Category)
	}

	w = get(r, "/api/stops?category=diner")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshDirectory(t *testing.T) {
	r := newTestRouter(t, nil, &fakeRefresher{n: 63})

	w := postJSON(r, "/internal/directory/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/internal/directory/refresh", nil)
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 63, decode[RefreshResponse](t, w).Loaded)
}

func TestRefreshDirectory_NotSupported(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/internal/directory/refresh", nil)
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&itinerary.InputResolutionError{Role: "start", Label: "x"}, http.StatusNotFound},
		{itinerary.ErrInvalidRequest{Field: "days"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", itinerary.ErrEmptyStopPool), http.StatusUnprocessableEntity},
		{directory.ErrSourceUnavailable, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
