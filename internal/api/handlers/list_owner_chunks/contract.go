package list_owner_chunks

import (
	"context"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

type ChunkService interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Chunk, error)
	ListAvailable(ctx context.Context, ownerID int64) ([]*domain.Chunk, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
