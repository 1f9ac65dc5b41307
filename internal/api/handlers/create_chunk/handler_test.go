package create_chunk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/service/chunks"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/testutil/memstore"
)

func newService(store *memstore.Store) *chunks.Service {
	return chunks.NewService(store.Chunks(), store.SubBookings(), store.TxManager(), memstore.NopLogger{}).
		WithTimeProvider(memstore.FixedClock{T: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)})
}

func post(t *testing.T, h *Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chunks", strings.NewReader(payload))
	session, err := domain.NewSession(1, "req-1", time.Now())
	require.NoError(t, err)
	req = req.WithContext(middleware.WithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CreatesChunkForSessionOwner(t *testing.T) {
	store := memstore.New()
	h := NewHandler(newService(store), memstore.NopLogger{})

	rec := post(t, h, `{"parkingName":"North","chunkName":"A","company":"Acme","totalSpots":30,
		"validFrom":"2026-03-01","validTo":"2026-03-31","vehicleType":"car"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handlers.ChunkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.OwnerID)
	assert.Equal(t, 30, resp.AvailableSpots)
	assert.Equal(t, string(domain.ChunkStatusActive), resp.Status)

	stored, err := store.Chunks().ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantField  string
	}{
		{
			name:       "zero spots",
			payload:    `{"parkingName":"North","chunkName":"A","company":"Acme","totalSpots":0,"validFrom":"2026-03-01","validTo":"2026-03-31","vehicleType":"car"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "totalSpots",
		},
		{
			name:       "foreign owner",
			payload:    `{"ownerId":2,"parkingName":"North","chunkName":"A","totalSpots":5,"validFrom":"2026-03-01","validTo":"2026-03-31","vehicleType":"car"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "bad date",
			payload:    `{"parkingName":"North","chunkName":"A","totalSpots":5,"validFrom":"March","validTo":"2026-03-31","vehicleType":"car"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			rec := post(t, NewHandler(newService(store), memstore.NopLogger{}), tt.payload)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantField, resp.Field)

			stored, _ := store.Chunks().ListByOwner(context.Background(), 1)
			assert.Empty(t, stored)
		})
	}
}
