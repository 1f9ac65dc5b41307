package get_dashboard_summary

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// ChunkRepository источник чанков координатора
type ChunkRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Chunk, error)
}

// CustomerDirectory справочник клиентов
type CustomerDirectory interface {
	ListByCoordinator(ctx context.Context, coordinatorID int64) ([]*domain.Customer, error)
}

// TransactionLog журнал транзакций
type TransactionLog interface {
	ListTransactions(ctx context.Context, coordinatorID int64, from, to time.Time) ([]*domain.Transaction, error)
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
