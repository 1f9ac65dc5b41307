package get_dashboard_summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/testutil/memstore"
	getDashboardSummary "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/get_dashboard_summary"
)

type fakeUseCase struct {
	calls int
	resp  *getDashboardSummary.Response
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getDashboardSummary.Request) (*getDashboardSummary.Response, error) {
	f.calls++
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, coordinatorID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/coordinators/"+coordinatorID+"/dashboard", nil)
	req = mux.SetURLVars(req, map[string]string{"coordinatorId": coordinatorID})

	session, err := domain.NewSession(1, "req-1", time.Now())
	require.NoError(t, err)
	req = req.WithContext(middleware.WithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	NewHandler(uc, memstore.NopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_DegradedSummary(t *testing.T) {
	uc := &fakeUseCase{resp: &getDashboardSummary.Response{
		Metrics: getDashboardSummary.Metrics{
			TotalPurchasedSpots: 30,
			TotalUsedSpots:      21,
			TotalAvailableSpots: 9,
			ActiveChunks:        1,
		},
		ParkingLocations: []getDashboardSummary.ParkingLocation{
			{ParkingName: "North", Chunks: 1, TotalSpots: 30, AvailableSpots: 9},
		},
		Alerts: []getDashboardSummary.Alert{
			{Type: getDashboardSummary.AlertWarning, Source: getDashboardSummary.SourceTransactions, Message: "transactions unavailable"},
		},
		DegradedSources: []string{getDashboardSummary.SourceTransactions},
		GeneratedAt:     time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}}

	rec := serve(t, uc, "1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 30, resp.Metrics.TotalPurchasedSpots)
	assert.Equal(t, 9, resp.Metrics.TotalAvailableSpots)
	assert.Equal(t, "North", resp.ParkingLocations[0].ParkingName)
	assert.Equal(t, []string{"transactions"}, resp.DegradedSources)
	assert.Equal(t, "warning", resp.Alerts[0].Type)
	assert.NotNil(t, resp.RecentTransactions)
	assert.Empty(t, resp.RecentTransactions)
	assert.Equal(t, "2026-03-10T09:30:00Z", resp.GeneratedAt)
}

func TestHandle_OtherCoordinatorForbidden(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, "2")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, uc.calls)
}

func TestHandle_UseCaseFailure(t *testing.T) {
	rec := serve(t, &fakeUseCase{err: errors.New("context canceled")}, "1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
