package record_usage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/testutil/memstore"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T, status domain.SubBookingStatus) (*memstore.Store, int64, *memstore.Publisher, *UseCase) {
	t.Helper()
	store := memstore.New()
	chunk := store.PutChunk(domain.Chunk{
		OwnerID:    1,
		TotalSpots: 10,
		UsedSpots:  3,
		ValidFrom:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.ChunkStatusActive,
	})
	sb, err := store.SubBookings().Create(context.Background(), &domain.SubBooking{
		Chunk:         domain.Unresolved(chunk.ID),
		OwnerID:       1,
		CustomerID:    7,
		AssignedSpots: 3,
		ValidFrom:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Status:        status,
	})
	require.NoError(t, err)

	publisher := &memstore.Publisher{}
	uc := NewUseCase(store.SubBookings(), publisher, memstore.NopLogger{})
	uc.timeProvider = memstore.FixedClock{T: now}
	return store, sb.ID, publisher, uc
}

func TestExecute_AccumulatesHours(t *testing.T) {
	store, id, publisher, uc := setup(t, domain.SubBookingStatusActive)

	_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Hours: 2.5})
	require.NoError(t, err)
	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Hours: 4})
	require.NoError(t, err)

	assert.InDelta(t, 6.5, resp.SubBooking.UsageHours, 1e-9)
	require.NotNil(t, resp.SubBooking.LastAccessDate)
	assert.True(t, now.Equal(*resp.SubBooking.LastAccessDate))
	assert.Equal(t, []events.EventType{events.EventUsageRecorded, events.EventUsageRecorded}, publisher.Types())

	// счетчики чанка не меняются
	c, _ := store.Chunk(resp.SubBooking.ChunkID())
	assert.Equal(t, 3, c.UsedSpots)
}

func TestExecute_SuspendedAcceptsUsage(t *testing.T) {
	_, id, _, uc := setup(t, domain.SubBookingStatusSuspended)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Hours: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.SubBooking.UsageHours, 1e-9)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		status domain.SubBookingStatus
		req    func(id int64) *Request
		want   error
	}{
		{"zero hours", domain.SubBookingStatusActive, func(id int64) *Request {
			return &Request{OwnerID: 1, SubBookingID: id, Hours: 0}
		}, ErrInvalidHours},
		{"negative hours", domain.SubBookingStatusActive, func(id int64) *Request {
			return &Request{OwnerID: 1, SubBookingID: id, Hours: -1}
		}, ErrInvalidHours},
		{"more than a day", domain.SubBookingStatusActive, func(id int64) *Request {
			return &Request{OwnerID: 1, SubBookingID: id, Hours: 24.5}
		}, ErrInvalidHours},
		{"NaN", domain.SubBookingStatusActive, func(id int64) *Request {
			return &Request{OwnerID: 1, SubBookingID: id, Hours: math.NaN()}
		}, ErrInvalidHours},
		{"expired", domain.SubBookingStatusExpired, func(id int64) *Request {
			return &Request{OwnerID: 1, SubBookingID: id, Hours: 1}
		}, ErrSubBookingExpired},
		{"foreign", domain.SubBookingStatusActive, func(id int64) *Request {
			return &Request{OwnerID: 2, SubBookingID: id, Hours: 1}
		}, ErrAccessDenied},
		{"unknown", domain.SubBookingStatusActive, func(id int64) *Request {
			return &Request{OwnerID: 1, SubBookingID: id + 100, Hours: 1}
		}, ErrSubBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, id, publisher, uc := setup(t, tt.status)

			_, err := uc.Execute(context.Background(), tt.req(id))
			assert.ErrorIs(t, err, tt.want)

			sb, _ := store.SubBooking(id)
			assert.Zero(t, sb.UsageHours)
			assert.Empty(t, publisher.Events)
		})
	}
}

func TestExecute_ExactlyADayIsAllowed(t *testing.T) {
	_, id, _, uc := setup(t, domain.SubBookingStatusActive)

	_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Hours: 24})
	assert.NoError(t, err)
}
