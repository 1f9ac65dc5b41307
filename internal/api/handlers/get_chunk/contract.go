package get_chunk

import (
	"context"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

type ChunkService interface {
	GetByID(ctx context.Context, id, ownerID int64) (*domain.Chunk, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
