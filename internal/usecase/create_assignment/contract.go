package create_assignment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
)

// ChunkRepository интерфейс репозитория чанков
type ChunkRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Chunk, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Chunk, error)
	AdjustUsedSpots(ctx context.Context, id int64, delta int) error
}

// SubBookingRepository интерфейс репозитория суб-бронирований
type SubBookingRepository interface {
	Create(ctx context.Context, sb *domain.SubBooking) (*domain.SubBooking, error)
	GetByID(ctx context.Context, id int64) (*domain.SubBooking, error)
}

// ChunkInventory пересчет счетчиков чанка
type ChunkInventory interface {
	RecomputeUsage(ctx context.Context, chunkID int64) (*domain.Chunk, error)
}

// CustomerServiceClient интерфейс клиента справочника клиентов
type CustomerServiceClient interface {
	GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error)
}

// IdempotencyStore хранилище ключей идемпотентности
type IdempotencyStore interface {
	Begin(ctx context.Context, scope string, ownerID int64, key string) (int64, bool, error)
	Complete(ctx context.Context, scope string, ownerID int64, key string, resultID int64) error
	Abort(ctx context.Context, scope string, ownerID int64, key string) error
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
