package update_assignment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrSubBookingNotFound возвращается, когда суб-бронирование не найдено
	ErrSubBookingNotFound = fmt.Errorf("update_assignment: sub-booking not found: %w", domain.ErrNotFound)

	// ErrChunkNotFound возвращается, когда родительский чанк не найден
	ErrChunkNotFound = fmt.Errorf("update_assignment: chunk not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда суб-бронирование принадлежит другому координатору
	ErrAccessDenied = fmt.Errorf("update_assignment: sub-booking belongs to another coordinator: %w", domain.ErrAccessDenied)

	// ErrSubBookingExpired причина отказа при редактировании истекшего суб-бронирования
	ErrSubBookingExpired = errors.New("update_assignment: sub-booking is expired")

	// ErrInvalidInput причина ошибок валидации входных данных
	ErrInvalidInput = errors.New("update_assignment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_assignment: internal error")
)
