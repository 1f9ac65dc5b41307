package delete_assignment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrSubBookingNotFound возвращается, когда суб-бронирование не найдено (в том числе при повторном удалении)
	ErrSubBookingNotFound = fmt.Errorf("delete_assignment: sub-booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда суб-бронирование принадлежит другому координатору
	ErrAccessDenied = fmt.Errorf("delete_assignment: sub-booking belongs to another coordinator: %w", domain.ErrAccessDenied)

	// ErrInvalidInput причина ошибок валидации входных данных
	ErrInvalidInput = errors.New("delete_assignment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_assignment: internal error")
)
