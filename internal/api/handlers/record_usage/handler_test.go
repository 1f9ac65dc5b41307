package record_usage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/testutil/memstore"
	recordUsage "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/record_usage"
)

type fakeUseCase struct {
	got  *recordUsage.Request
	resp *recordUsage.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *recordUsage.Request) (*recordUsage.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, subBookingID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sub-bookings/"+subBookingID+"/usage", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"subBookingId": subBookingID})

	session, err := domain.NewSession(1, "req-1", time.Now())
	require.NoError(t, err)
	req = req.WithContext(middleware.WithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	NewHandler(uc, memstore.NopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_RecordsHours(t *testing.T) {
	accessed := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &recordUsage.Response{SubBooking: &domain.SubBooking{
		ID:             11,
		Chunk:          domain.Unresolved(5),
		OwnerID:        1,
		Status:         domain.SubBookingStatusActive,
		UsageHours:     5.5,
		LastAccessDate: &accessed,
	}}}

	rec := serve(t, uc, "11", `{"hours":2.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.SubBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 5.5, resp.UsageHours)
	require.NotNil(t, resp.LastAccessDate)
	assert.Equal(t, "2026-03-10T09:30:00Z", *resp.LastAccessDate)

	assert.Equal(t, &recordUsage.Request{OwnerID: 1, SubBookingID: 11, Hours: 2.5}, uc.got)
}

func TestHandle_RejectsMalformedInputBeforeUseCase(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{"bad id", "-3", `{"hours":1}`},
		{"empty body", "11", ``},
		{"hours as string", "11", `{"hours":"two"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(t, uc, tt.id, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_MapsUseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
	}{
		{"hours out of range", domain.Invalid(recordUsage.ErrInvalidHours, "hours", "must be in (0, 24]"),
			http.StatusBadRequest, "hours"},
		{"expired", domain.Invalid(recordUsage.ErrSubBookingExpired, "status", "sub-booking is expired"),
			http.StatusBadRequest, "status"},
		{"not found", recordUsage.ErrSubBookingNotFound, http.StatusNotFound, ""},
		{"foreign", recordUsage.ErrAccessDenied, http.StatusForbidden, ""},
		{"internal", recordUsage.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, "11", `{"hours":30}`)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantField, resp.Field)
		})
	}
}
