package record_usage

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
)

// SubBookingRepository интерфейс репозитория суб-бронирований
type SubBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SubBooking, error)
	AddUsage(ctx context.Context, id int64, hours float64, at time.Time) (*domain.SubBooking, error)
}

// EventPublisher публикация событий после записи
type EventPublisher interface {
	Publish(ctx context.Context, event events.AllocationEvent)
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
