package chunks

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrChunkNotFound возвращается, когда чанк не найден
	ErrChunkNotFound = fmt.Errorf("chunks: chunk not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда чанк принадлежит другому координатору
	ErrAccessDenied = fmt.Errorf("chunks: chunk belongs to another coordinator: %w", domain.ErrAccessDenied)

	// ErrUsageConflict возвращается, когда пересчет дал used_spots больше total_spots
	ErrUsageConflict = fmt.Errorf("chunks: active sub-bookings exceed chunk capacity: %w", domain.ErrConflict)

	// ErrInvalidInput причина ошибок валидации при создании чанка
	ErrInvalidInput = errors.New("chunks: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("chunks: internal error")
)
