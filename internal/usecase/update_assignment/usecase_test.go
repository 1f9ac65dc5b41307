package update_assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/service/chunks"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/allocation"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/ptr"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return t
}

type fixture struct {
	store     *memstore.Store
	chunk     *domain.Chunk
	sub       *domain.SubBooking
	publisher *memstore.Publisher
	uc        *UseCase
}

// newFixture чанк на totalSpots мест с одним суб-бронированием на spots мест
func newFixture(t *testing.T, totalSpots, spots int, status domain.SubBookingStatus) *fixture {
	t.Helper()
	store := memstore.New()

	used := 0
	if status == domain.SubBookingStatusActive {
		used = spots
	}
	chunk := store.PutChunk(domain.Chunk{
		OwnerID:    1,
		TotalSpots: totalSpots,
		UsedSpots:  used,
		ValidFrom:  date("2026-03-01"),
		ValidTo:    date("2026-03-31"),
		Status:     domain.ChunkStatusActive,
	})
	if used == totalSpots {
		chunk.Status = domain.ChunkStatusFull
		store.PutChunk(*chunk)
	}

	sub, err := store.SubBookings().Create(context.Background(), &domain.SubBooking{
		Chunk:         domain.Unresolved(chunk.ID),
		OwnerID:       1,
		CustomerID:    7,
		AssignedSpots: spots,
		ValidFrom:     date("2026-03-05"),
		ValidTo:       date("2026-03-20"),
		Status:        status,
	})
	require.NoError(t, err)

	clock := memstore.FixedClock{T: now}
	inventory := chunks.NewService(store.Chunks(), store.SubBookings(), store.TxManager(), memstore.NopLogger{}).
		WithTimeProvider(clock)

	publisher := &memstore.Publisher{}
	uc := NewUseCase(store.Chunks(), store.SubBookings(), inventory, publisher, &memstore.Metrics{},
		store.TxManager(), memstore.NopLogger{})
	uc.timeProvider = clock

	return &fixture{store: store, chunk: chunk, sub: sub, publisher: publisher, uc: uc}
}

func (f *fixture) available() int {
	c, _ := f.store.Chunk(f.chunk.ID)
	return c.AvailableSpots()
}

func TestExecute_ShrinkReleasesSpots(t *testing.T) {
	f := newFixture(t, 10, 4, domain.SubBookingStatusActive)
	require.Equal(t, 6, f.available())

	resp, err := f.uc.Execute(context.Background(), &Request{
		OwnerID: 1, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.SubBooking.AssignedSpots)
	assert.Equal(t, 8, f.available())
	assert.Equal(t, f.store.ActiveSpots(f.chunk.ID), 10-f.available())
	assert.Equal(t, []events.EventType{events.EventAllocationUpdated}, f.publisher.Types())

	// окно не передавалось и должно сохраниться
	assert.Equal(t, date("2026-03-05"), resp.SubBooking.ValidFrom)
}

func TestExecute_GrowUsesEffectiveCapacity(t *testing.T) {
	// чанк полностью занят этим суб-бронированием: свободно 0, эффективно 10
	f := newFixture(t, 10, 10, domain.SubBookingStatusActive)

	_, err := f.uc.Execute(context.Background(), &Request{
		OwnerID: 1, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(10), Notes: ptr.Ptr("gate B"),
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		OwnerID: 1, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(11),
	})
	assert.ErrorIs(t, err, allocation.ErrInsufficientSpots)
	assert.Equal(t, 0, f.available())

	// уменьшение полностью занятого чанка возвращает статус active
	resp, err := f.uc.Execute(context.Background(), &Request{
		OwnerID: 1, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(9),
	})
	require.NoError(t, err)
	chunk, ok := resp.SubBooking.Chunk.Chunk()
	require.True(t, ok)
	assert.Equal(t, domain.ChunkStatusActive, chunk.Status)
	assert.Equal(t, "gate B", *resp.SubBooking.Notes)
}

func TestExecute_SuspendedDoesNotHoldCapacity(t *testing.T) {
	f := newFixture(t, 10, 4, domain.SubBookingStatusSuspended)
	require.Equal(t, 10, f.available())

	_, err := f.uc.Execute(context.Background(), &Request{
		OwnerID: 1, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(6),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.available())
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  func(f *fixture) *Request
		want error
	}{
		{"window outside chunk", func(f *fixture) *Request {
			return &Request{OwnerID: 1, SubBookingID: f.sub.ID, ValidTo: ptr.Ptr(date("2026-04-05"))}
		}, allocation.ErrOutsideChunkWindow},
		{"end before start", func(f *fixture) *Request {
			return &Request{OwnerID: 1, SubBookingID: f.sub.ID, ValidFrom: ptr.Ptr(date("2026-03-25"))}
		}, allocation.ErrInvalidWindow},
		{"zero spots", func(f *fixture) *Request {
			return &Request{OwnerID: 1, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(0)}
		}, allocation.ErrInvalidSpots},
		{"empty patch", func(f *fixture) *Request {
			return &Request{OwnerID: 1, SubBookingID: f.sub.ID}
		}, ErrInvalidInput},
		{"unknown sub-booking", func(f *fixture) *Request {
			return &Request{OwnerID: 1, SubBookingID: 999, AssignedSpots: ptr.Ptr(1)}
		}, ErrSubBookingNotFound},
		{"foreign sub-booking", func(f *fixture) *Request {
			return &Request{OwnerID: 2, SubBookingID: f.sub.ID, AssignedSpots: ptr.Ptr(1)}
		}, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 10, 4, domain.SubBookingStatusActive)

			_, err := f.uc.Execute(context.Background(), tt.req(f))
			assert.ErrorIs(t, err, tt.want)

			stored, _ := f.store.SubBooking(f.sub.ID)
			assert.Equal(t, 4, stored.AssignedSpots)
			assert.Equal(t, 6, f.available())
			assert.Empty(t, f.publisher.Events)
		})
	}
}

func TestExecute_ExpiredCannotBeEdited(t *testing.T) {
	f := newFixture(t, 10, 4, domain.SubBookingStatusExpired)

	_, err := f.uc.Execute(context.Background(), &Request{
		OwnerID: 1, SubBookingID: f.sub.ID, Notes: ptr.Ptr("late"),
	})
	assert.ErrorIs(t, err, ErrSubBookingExpired)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
