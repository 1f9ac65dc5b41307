package delete_assignment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
)

// ChunkRepository интерфейс репозитория чанков
type ChunkRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Chunk, error)
	AdjustUsedSpots(ctx context.Context, id int64, delta int) error
}

// SubBookingRepository интерфейс репозитория суб-бронирований
type SubBookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.SubBooking, error)
	Delete(ctx context.Context, id int64) error
}

// ChunkInventory пересчет счетчиков чанка
type ChunkInventory interface {
	RecomputeUsage(ctx context.Context, chunkID int64) (*domain.Chunk, error)
}

// EventPublisher публикация событий после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event events.AllocationEvent)
}

// Metrics доменные счетчики
type Metrics interface {
	Allocated(operation string)
	Rejected(operation, reason string)
	Conflict(operation string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
