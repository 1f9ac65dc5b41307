package create_assignment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrChunkNotFound возвращается, когда чанк не найден
	ErrChunkNotFound = fmt.Errorf("create_assignment: chunk not found: %w", domain.ErrNotFound)

	// ErrCustomerNotFound возвращается, когда клиента нет в справочнике
	ErrCustomerNotFound = fmt.Errorf("create_assignment: customer not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда чанк принадлежит другому координатору
	ErrAccessDenied = fmt.Errorf("create_assignment: chunk belongs to another coordinator: %w", domain.ErrAccessDenied)

	// ErrRequestInProgress возвращается, когда запрос с тем же Idempotency-Key еще выполняется
	ErrRequestInProgress = fmt.Errorf("create_assignment: request with this idempotency key is in progress: %w", domain.ErrConflict)

	// ErrInvalidInput причина ошибок валидации входных данных
	ErrInvalidInput = errors.New("create_assignment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_assignment: internal error")
)
