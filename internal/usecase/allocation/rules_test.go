package allocation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/txmanager"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return t
}

func marchChunk() *domain.Chunk {
	return &domain.Chunk{
		ID:         1,
		TotalSpots: 10,
		UsedSpots:  4,
		ValidFrom:  date("2026-03-01"),
		ValidTo:    date("2026-03-31"),
		Status:     domain.ChunkStatusActive,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		chunk   func() *domain.Chunk
		a       Assignment
		want    error
		message string
	}{
		{
			name:  "exactly all available spots",
			chunk: marchChunk,
			a:     Assignment{AssignedSpots: 6, ValidFrom: date("2026-03-01"), ValidTo: date("2026-03-31")},
		},
		{
			name:    "one more than available",
			chunk:   marchChunk,
			a:       Assignment{AssignedSpots: 7, ValidFrom: date("2026-03-05"), ValidTo: date("2026-03-06")},
			want:    ErrInsufficientSpots,
			message: "cannot assign more than 6 available spots",
		},
		{
			name:  "zero spots",
			chunk: marchChunk,
			a:     Assignment{AssignedSpots: 0, ValidFrom: date("2026-03-05"), ValidTo: date("2026-03-06")},
			want:  ErrInvalidSpots,
		},
		{
			name:  "end before start",
			chunk: marchChunk,
			a:     Assignment{AssignedSpots: 1, ValidFrom: date("2026-03-06"), ValidTo: date("2026-03-05")},
			want:  ErrInvalidWindow,
		},
		{
			name:  "window ends after chunk",
			chunk: marchChunk,
			a:     Assignment{AssignedSpots: 1, ValidFrom: date("2026-03-20"), ValidTo: date("2026-04-01")},
			want:  ErrOutsideChunkWindow,
		},
		{
			name:  "window starts before chunk",
			chunk: marchChunk,
			a:     Assignment{AssignedSpots: 1, ValidFrom: date("2026-02-28"), ValidTo: date("2026-03-02")},
			want:  ErrOutsideChunkWindow,
		},
		{
			name: "expired chunk is checked first",
			chunk: func() *domain.Chunk {
				c := marchChunk()
				c.Status = domain.ChunkStatusExpired
				return c
			},
			a:    Assignment{AssignedSpots: 100},
			want: ErrChunkExpired,
		},
		{
			name: "overdue chunk counts as expired",
			chunk: func() *domain.Chunk {
				c := marchChunk()
				c.ValidTo = date("2026-03-09")
				return c
			},
			a:    Assignment{AssignedSpots: 1, ValidFrom: date("2026-03-05"), ValidTo: date("2026-03-06")},
			want: ErrChunkExpired,
		},
		{
			name:  "spots checked before window",
			chunk: marchChunk,
			a:     Assignment{AssignedSpots: 50, ValidFrom: date("2026-05-01"), ValidTo: date("2026-04-01")},
			want:  ErrInsufficientSpots,
		},
		{
			name:  "notes too long",
			chunk: marchChunk,
			a: Assignment{AssignedSpots: 1, ValidFrom: date("2026-03-05"), ValidTo: date("2026-03-06"),
				Notes: ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1))},
			want: ErrNotesTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := tt.chunk()
			err := Validate(chunk, tt.a, chunk.AvailableSpots(), now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
			if tt.message != "" {
				var vErr *domain.ValidationError
				assert.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.message, vErr.Reason)
			}
		})
	}
}

func TestValidate_EffectiveCapacity(t *testing.T) {
	chunk := marchChunk()
	chunk.UsedSpots = 10

	// редактирование активного суб-бронирования на 4 места: свободно 0 + 4
	err := Validate(chunk, Assignment{AssignedSpots: 4, ValidFrom: date("2026-03-02"), ValidTo: date("2026-03-03")}, 4, now)
	assert.NoError(t, err)

	err = Validate(chunk, Assignment{AssignedSpots: 5, ValidFrom: date("2026-03-02"), ValidTo: date("2026-03-03")}, 4, now)
	assert.ErrorIs(t, err, ErrInsufficientSpots)
}

func TestNormalizeNotes(t *testing.T) {
	assert.Nil(t, NormalizeNotes(nil))
	assert.Nil(t, NormalizeNotes(ptr.Ptr("   ")))
	assert.Equal(t, "gate B", *NormalizeNotes(ptr.Ptr(" gate B ")))
}

func TestIsCapacityConflictAndReason(t *testing.T) {
	assert.True(t, IsCapacityConflict(fmt.Errorf("wrap: %w", chunkRepo.ErrCapacityExceeded)))
	assert.True(t, IsCapacityConflict(fmt.Errorf("%w: 40001", txmanager.ErrSerialization)))
	assert.True(t, IsCapacityConflict(ErrCapacityConflict))
	assert.False(t, IsCapacityConflict(errors.New("other")))

	assert.Equal(t, "assignedSpots", Reason(domain.Invalid(ErrInsufficientSpots, "assignedSpots", "x")))
	assert.Equal(t, "conflict", Reason(ErrCapacityConflict))
	assert.Equal(t, "not_found", Reason(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, "internal", Reason(errors.New("boom")))
}
