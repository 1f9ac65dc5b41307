package create_chunk

import (
	"context"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/service/chunks"
)

type ChunkService interface {
	Create(ctx context.Context, req *chunks.CreateChunkRequest) (*domain.Chunk, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
