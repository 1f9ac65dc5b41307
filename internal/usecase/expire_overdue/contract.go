package expire_overdue

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
)

// ChunkRepository интерфейс репозитория чанков
type ChunkRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Chunk, error)
	ListOverdueIDs(ctx context.Context, today time.Time) ([]int64, error)
	AdjustUsedSpots(ctx context.Context, id int64, delta int) error
}

// SubBookingRepository интерфейс репозитория суб-бронирований
type SubBookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.SubBooking, error)
	ListOverdue(ctx context.Context, today time.Time) ([]*domain.SubBooking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SubBookingStatus) error
}

// ChunkInventory пересчет счетчиков и статуса чанка
type ChunkInventory interface {
	RecomputeUsage(ctx context.Context, chunkID int64) (*domain.Chunk, error)
}

// EventPublisher публикация событий после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event events.AllocationEvent)
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
