package list_owner_chunks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/testutil/memstore"
)

type fakeService struct {
	all       []*domain.Chunk
	available []*domain.Chunk
	calls     []string
}

func (f *fakeService) ListByOwner(_ context.Context, _ int64) ([]*domain.Chunk, error) {
	f.calls = append(f.calls, "all")
	return f.all, nil
}

func (f *fakeService) ListAvailable(_ context.Context, _ int64) ([]*domain.Chunk, error) {
	f.calls = append(f.calls, "available")
	return f.available, nil
}

func serve(t *testing.T, svc *fakeService, ownerID, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/owners/"+ownerID+"/chunks"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"ownerId": ownerID})

	session, err := domain.NewSession(1, "req-1", time.Now())
	require.NoError(t, err)
	req = req.WithContext(middleware.WithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	NewHandler(svc, memstore.NopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_AvailableFilter(t *testing.T) {
	svc := &fakeService{
		all: []*domain.Chunk{
			{ID: 1, OwnerID: 1, TotalSpots: 10, UsedSpots: 10, Status: domain.ChunkStatusFull},
			{ID: 2, OwnerID: 1, TotalSpots: 10, UsedSpots: 4, Status: domain.ChunkStatusActive},
		},
		available: []*domain.Chunk{
			{ID: 2, OwnerID: 1, TotalSpots: 10, UsedSpots: 4, Status: domain.ChunkStatusActive},
		},
	}

	rec := serve(t, svc, "1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []handlers.ChunkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	assert.Len(t, all, 2)

	rec = serve(t, svc, "1", "?available=true")
	require.Equal(t, http.StatusOK, rec.Code)
	var available []handlers.ChunkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&available))
	require.Len(t, available, 1)
	assert.Equal(t, 6, available[0].AvailableSpots)

	assert.Equal(t, []string{"all", "available"}, svc.calls)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		ownerID    string
		query      string
		wantStatus int
	}{
		{"other coordinator", "2", "", http.StatusForbidden},
		{"bad owner id", "x", "", http.StatusBadRequest},
		{"bad available flag", "1", "?available=maybe", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(t, svc, tt.ownerID, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, svc.calls)
		})
	}
}
