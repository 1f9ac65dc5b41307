package create_assignment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// validateRequest валидирует идентификаторы запроса
// Ограничения емкости и дат проверяются против чанка в allocation.Validate
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return domain.Invalid(ErrInvalidInput, "ownerId", "must be positive")
	}

	if req.ChunkID <= 0 {
		return domain.Invalid(ErrInvalidInput, "bulkBookingId", "must be positive")
	}

	if req.CustomerID <= 0 {
		return domain.Invalid(ErrInvalidInput, "customerId", "must be positive")
	}

	if req.IdempotencyKey != "" {
		if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
			return domain.Invalid(ErrInvalidInput, "Idempotency-Key", "must be a UUID")
		}
	}

	return nil
}
