package chunks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// ChunkRepository интерфейс репозитория чанков
type ChunkRepository interface {
	Create(ctx context.Context, chunk *domain.Chunk) (*domain.Chunk, error)
	GetByID(ctx context.Context, id int64) (*domain.Chunk, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Chunk, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Chunk, error)
	ListAvailable(ctx context.Context, ownerID int64, today time.Time) ([]*domain.Chunk, error)
	UpdateUsage(ctx context.Context, id int64, usedSpots int, status domain.ChunkStatus) error
}

// SubBookingRepository интерфейс репозитория суб-бронирований
type SubBookingRepository interface {
	ListByChunk(ctx context.Context, chunkID int64) ([]*domain.SubBooking, error)
	SumActiveSpots(ctx context.Context, chunkID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
