package list_chunk_sub_bookings

import (
	"context"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

type ChunkService interface {
	ListSubBookings(ctx context.Context, chunkID, ownerID int64) ([]*domain.SubBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
