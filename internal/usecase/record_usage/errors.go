package record_usage

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrSubBookingNotFound возвращается, когда суб-бронирование не найдено
	ErrSubBookingNotFound = fmt.Errorf("record_usage: sub-booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда суб-бронирование принадлежит другому координатору
	ErrAccessDenied = fmt.Errorf("record_usage: sub-booking belongs to another coordinator: %w", domain.ErrAccessDenied)

	// ErrSubBookingExpired причина отказа при записи использования истекшего суб-бронирования
	ErrSubBookingExpired = errors.New("record_usage: sub-booking is expired")

	// ErrInvalidHours причина отказа при недопустимом количестве часов
	ErrInvalidHours = errors.New("record_usage: invalid hours")

	// ErrInvalidInput причина ошибок валидации входных данных
	ErrInvalidInput = errors.New("record_usage: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_usage: internal error")
)
