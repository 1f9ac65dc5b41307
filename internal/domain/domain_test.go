package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestChunk_DeriveStatus(t *testing.T) {
	now := date("2026-03-10")
	chunk := &Chunk{TotalSpots: 10, ValidFrom: date("2026-03-01"), ValidTo: date("2026-03-31"), Status: ChunkStatusActive}

	assert.Equal(t, ChunkStatusActive, chunk.DeriveStatus(4, now))
	assert.Equal(t, ChunkStatusFull, chunk.DeriveStatus(10, now))

	// validTo прошел - Expired перекрывает Full/Active
	assert.Equal(t, ChunkStatusExpired, chunk.DeriveStatus(0, date("2026-04-01")))

	// последний день окна еще действует
	assert.Equal(t, ChunkStatusActive, chunk.DeriveStatus(0, date("2026-03-31")))

	// Expired необратим
	chunk.Status = ChunkStatusExpired
	assert.Equal(t, ChunkStatusExpired, chunk.DeriveStatus(0, now))
}

func TestChunk_ContainsAndAvailability(t *testing.T) {
	now := date("2026-03-10")
	chunk := &Chunk{TotalSpots: 10, UsedSpots: 4, ValidFrom: date("2026-03-01"), ValidTo: date("2026-03-31"), Status: ChunkStatusActive}

	assert.Equal(t, 6, chunk.AvailableSpots())
	assert.True(t, chunk.Contains(date("2026-03-01"), date("2026-03-31")))
	assert.False(t, chunk.Contains(date("2026-02-28"), date("2026-03-05")))
	assert.False(t, chunk.Contains(date("2026-03-05"), date("2026-04-01")))
	assert.True(t, chunk.IsAvailableForAllocation(now))
	assert.InDelta(t, 40.0, chunk.OccupancyRate(), 0.001)

	chunk.UsedSpots = 10
	assert.False(t, chunk.IsAvailableForAllocation(now))
}

func TestSubBooking_StatusTransitions(t *testing.T) {
	sb := &SubBooking{Status: SubBookingStatusActive}
	assert.True(t, sb.HoldsCapacity())
	assert.True(t, sb.CanTransitionTo(SubBookingStatusSuspended))
	assert.False(t, sb.CanTransitionTo(SubBookingStatusExpired))

	sb.Status = SubBookingStatusSuspended
	assert.False(t, sb.HoldsCapacity())
	assert.True(t, sb.CanTransitionTo(SubBookingStatusActive))

	sb.Status = SubBookingStatusExpired
	assert.False(t, sb.CanTransitionTo(SubBookingStatusActive))
	assert.False(t, sb.CanTransitionTo(SubBookingStatusSuspended))
	assert.False(t, sb.CanBeEdited())
}

func TestChunkRef(t *testing.T) {
	ref := Unresolved(42)
	assert.Equal(t, int64(42), ref.ID())
	_, ok := ref.Chunk()
	assert.False(t, ok)

	// запись с другим id не прикрепляется
	assert.False(t, ref.Resolve(&Chunk{ID: 7}).IsResolved())

	resolved := ref.Resolve(&Chunk{ID: 42, ChunkName: "Expo"})
	chunk, ok := resolved.Chunk()
	require.True(t, ok)
	assert.Equal(t, "Expo", chunk.ChunkName)
	assert.Equal(t, int64(42), resolved.ID())

	sb := SubBooking{Chunk: Resolved(&Chunk{ID: 3})}
	assert.Equal(t, int64(3), sb.ChunkID())
}

func TestSession_Lifecycle(t *testing.T) {
	_, err := NewSession(0, "req", time.Now())
	assert.ErrorIs(t, err, ErrInvalidSession)

	s, err := NewSession(5, "req-1", time.Now())
	require.NoError(t, err)
	assert.True(t, s.Owns(5))
	assert.False(t, s.Owns(6))

	s.Close()
	assert.False(t, s.IsActive())
	assert.False(t, s.Owns(5))
}

func TestTransaction_CountsAsRevenue(t *testing.T) {
	tx := &Transaction{Type: TransactionTypeBulkBooking, Status: TransactionStatusCompleted}
	assert.True(t, tx.CountsAsRevenue())

	tx.Status = TransactionStatusPending
	assert.False(t, tx.CountsAsRevenue())

	tx = &Transaction{Type: TransactionTypeRefund, Status: TransactionStatusCompleted}
	assert.False(t, tx.CountsAsRevenue())
}

func TestVehicleType_IsValid(t *testing.T) {
	assert.True(t, VehicleCar.IsValid())
	assert.False(t, VehicleType("boat").IsValid())
}

func TestValidationError_MatchesCauseAndCategory(t *testing.T) {
	cause := errors.New("allocation: insufficient spots")

	err := Invalid(cause, "assignedSpots", "cannot assign more than %d available spots", 6)
	assert.Equal(t, "assignedSpots: cannot assign more than 6 available spots", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrConflict)

	wrapped := fmt.Errorf("create: %w", err)
	var ve *ValidationError
	require.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "assignedSpots", ve.Field)

	assert.ErrorIs(t, Invalid(nil, "body", "empty"), ErrValidation)
}
