package update_sub_booking

import (
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/allocation"
	updateAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/update_assignment"
)

type fakeUseCase struct {
	got  *updateAssignment.Request
	resp *updateAssignment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateAssignment.Request) (*updateAssignment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, subBookingID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sub-bookings/"+subBookingID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"subBookingId": subBookingID})

	session, err := domain.NewSession(1, "req-1", time.Now())
	require.NoError(t, err)
	req = req.WithContext(middleware.WithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	NewHandler(uc, memstore.NopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_UpdatesPartially(t *testing.T) {
	from := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &updateAssignment.Response{SubBooking: &domain.SubBooking{
		ID:            11,
		Chunk:         domain.Unresolved(5),
		OwnerID:       1,
		AssignedSpots: 4,
		ValidFrom:     from,
		ValidTo:       from.AddDate(0, 0, 10),
		Status:        domain.SubBookingStatusActive,
	}}}

	rec := serve(t, uc, "11", `{"assignedSpots":4,"validFrom":"2026-03-05"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.SubBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, 4, resp.AssignedSpots)
	assert.Equal(t, "2026-03-05", resp.ValidFrom)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.OwnerID)
	assert.Equal(t, int64(11), uc.got.SubBookingID)
	require.NotNil(t, uc.got.AssignedSpots)
	assert.Equal(t, 4, *uc.got.AssignedSpots)
	require.NotNil(t, uc.got.ValidFrom)
	assert.Equal(t, from, *uc.got.ValidFrom)
	assert.Nil(t, uc.got.ValidTo)
	assert.Nil(t, uc.got.Notes)
}

func TestHandle_RejectsMalformedInputBeforeUseCase(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{"bad id", "abc", `{"assignedSpots":1}`},
		{"empty body", "11", ``},
		{"malformed json", "11", `{"assignedSpots":`},
		{"unknown field", "11", `{"spots":1}`},
		{"malformed date", "11", `{"validTo":"31.03.2026"}`},
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
		{"validation", domain.Invalid(allocation.ErrInsufficientSpots, "assignedSpots", "cannot assign more than 2 available spots"),
			http.StatusBadRequest, "assignedSpots"},
		{"not found", updateAssignment.ErrSubBookingNotFound, http.StatusNotFound, ""},
		{"foreign", updateAssignment.ErrAccessDenied, http.StatusForbidden, ""},
		{"lost race", fmt.Errorf("%w: chunk=5", allocation.ErrCapacityConflict), http.StatusConflict, ""},
		{"internal", updateAssignment.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, "11", `{"assignedSpots":9}`)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Equal(t, tt.wantField, resp.Field)
		})
	}
}
