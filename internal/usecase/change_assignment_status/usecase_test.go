package change_assignment_status

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
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return t
}

type fixture struct {
	store     *memstore.Store
	chunkID   int64
	publisher *memstore.Publisher
	uc        *UseCase
}

func newFixture(totalSpots int) *fixture {
	store := memstore.New()
	chunk := store.PutChunk(domain.Chunk{
		OwnerID:    1,
		TotalSpots: totalSpots,
		ValidFrom:  date("2026-03-01"),
		ValidTo:    date("2026-03-31"),
		Status:     domain.ChunkStatusActive,
	})

	clock := memstore.FixedClock{T: now}
	inventory := chunks.NewService(store.Chunks(), store.SubBookings(), store.TxManager(), memstore.NopLogger{}).
		WithTimeProvider(clock)
	publisher := &memstore.Publisher{}

	uc := NewUseCase(store.Chunks(), store.SubBookings(), inventory, publisher, &memstore.Metrics{},
		store.TxManager(), memstore.NopLogger{})
	uc.timeProvider = clock

	return &fixture{store: store, chunkID: chunk.ID, publisher: publisher, uc: uc}
}

// add добавляет суб-бронирование и синхронизирует счетчик чанка
func (f *fixture) add(t *testing.T, spots int, status domain.SubBookingStatus, from, to string) int64 {
	t.Helper()
	sb, err := f.store.SubBookings().Create(context.Background(), &domain.SubBooking{
		Chunk: domain.Unresolved(f.chunkID), OwnerID: 1, CustomerID: 7, AssignedSpots: spots,
		ValidFrom: date(from), ValidTo: date(to), Status: status,
	})
	require.NoError(t, err)

	c, _ := f.store.Chunk(f.chunkID)
	c.UsedSpots = f.store.ActiveSpots(f.chunkID)
	f.store.PutChunk(c)
	return sb.ID
}

func (f *fixture) chunk() *domain.Chunk {
	c, _ := f.store.Chunk(f.chunkID)
	return &c
}

func TestExecute_SuspendReleasesAndReinstateRetakes(t *testing.T) {
	f := newFixture(10)
	id := f.add(t, 4, domain.SubBookingStatusActive, "2026-03-05", "2026-03-20")
	require.Equal(t, 6, f.chunk().AvailableSpots())

	resp, err := f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Status: domain.SubBookingStatusSuspended})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.SubBookingStatusSuspended, resp.SubBooking.Status)
	assert.Equal(t, 10, f.chunk().AvailableSpots())

	resp, err = f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Status: domain.SubBookingStatusActive})
	require.NoError(t, err)
	assert.Equal(t, domain.SubBookingStatusActive, resp.SubBooking.Status)
	assert.Equal(t, 6, f.chunk().AvailableSpots())

	assert.Equal(t, []events.EventType{
		events.EventAllocationStatusChanged,
		events.EventAllocationStatusChanged,
	}, f.publisher.Types())
}

func TestExecute_ReinstateRechecksCapacity(t *testing.T) {
	f := newFixture(10)
	suspended := f.add(t, 4, domain.SubBookingStatusSuspended, "2026-03-05", "2026-03-20")
	f.add(t, 8, domain.SubBookingStatusActive, "2026-03-05", "2026-03-20")

	_, err := f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: suspended, Status: domain.SubBookingStatusActive})
	assert.ErrorIs(t, err, allocation.ErrInsufficientSpots)

	sb, _ := f.store.SubBooking(suspended)
	assert.Equal(t, domain.SubBookingStatusSuspended, sb.Status)
	assert.Equal(t, 8, f.chunk().UsedSpots)
}

func TestExecute_ReinstateOverdueRejected(t *testing.T) {
	f := newFixture(10)
	id := f.add(t, 2, domain.SubBookingStatusSuspended, "2026-03-02", "2026-03-09")

	_, err := f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Status: domain.SubBookingStatusActive})
	assert.ErrorIs(t, err, ErrSubBookingOverdue)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_ExpiredIsTerminal(t *testing.T) {
	f := newFixture(10)
	id := f.add(t, 2, domain.SubBookingStatusExpired, "2026-03-02", "2026-03-09")

	_, err := f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Status: domain.SubBookingStatusActive})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_SameStatusIsNoop(t *testing.T) {
	f := newFixture(10)
	id := f.add(t, 3, domain.SubBookingStatusActive, "2026-03-05", "2026-03-20")

	resp, err := f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Status: domain.SubBookingStatusActive})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, 7, f.chunk().AvailableSpots())
	assert.Empty(t, f.publisher.Events)
}

func TestExecute_ValidationAndOwnership(t *testing.T) {
	f := newFixture(10)
	id := f.add(t, 3, domain.SubBookingStatusActive, "2026-03-05", "2026-03-20")

	_, err := f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: id, Status: domain.SubBookingStatusExpired})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{OwnerID: 2, SubBookingID: id, Status: domain.SubBookingStatusSuspended})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.uc.Execute(context.Background(), &Request{OwnerID: 1, SubBookingID: 404, Status: domain.SubBookingStatusSuspended})
	assert.ErrorIs(t, err, ErrSubBookingNotFound)
}
