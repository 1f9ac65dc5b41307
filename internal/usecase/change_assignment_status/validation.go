package change_assignment_status

import "github.com/m04kA/SMC-ParkingAllocationService/internal/domain"

// validateRequest валидирует идентификаторы и целевой статус
// Вручную можно выставить только active или suspended; expired выставляет только фоновая задача
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return domain.Invalid(ErrInvalidInput, "ownerId", "must be positive")
	}

	if req.SubBookingID <= 0 {
		return domain.Invalid(ErrInvalidInput, "subBookingId", "must be positive")
	}

	switch req.Status {
	case domain.SubBookingStatusActive, domain.SubBookingStatusSuspended:
		return nil
	default:
		return domain.Invalid(ErrInvalidInput, "status", "must be %q or %q",
			domain.SubBookingStatusActive, domain.SubBookingStatusSuspended)
	}
}
