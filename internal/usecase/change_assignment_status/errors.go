package change_assignment_status

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrSubBookingNotFound возвращается, когда суб-бронирование не найдено
	ErrSubBookingNotFound = fmt.Errorf("change_assignment_status: sub-booking not found: %w", domain.ErrNotFound)

	// ErrChunkNotFound возвращается, когда родительский чанк не найден
	ErrChunkNotFound = fmt.Errorf("change_assignment_status: chunk not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда суб-бронирование принадлежит другому координатору
	ErrAccessDenied = fmt.Errorf("change_assignment_status: sub-booking belongs to another coordinator: %w", domain.ErrAccessDenied)

	// ErrInvalidTransition причина отказа для недопустимого перехода статуса
	ErrInvalidTransition = errors.New("change_assignment_status: invalid status transition")

	// ErrSubBookingOverdue причина отказа при возобновлении суб-бронирования с прошедшим validTo
	ErrSubBookingOverdue = errors.New("change_assignment_status: sub-booking window has passed")

	// ErrInvalidInput причина ошибок валидации входных данных
	ErrInvalidInput = errors.New("change_assignment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_assignment_status: internal error")
)
