package record_usage

import (
	"math"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// validateRequest валидирует запрос
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return domain.Invalid(ErrInvalidInput, "ownerId", "must be positive")
	}

	if req.SubBookingID <= 0 {
		return domain.Invalid(ErrInvalidInput, "subBookingId", "must be positive")
	}

	if math.IsNaN(req.Hours) || math.IsInf(req.Hours, 0) || req.Hours <= 0 {
		return domain.Invalid(ErrInvalidHours, "hours", "must be greater than 0")
	}

	if req.Hours > domain.MaxUsageHoursPerOp {
		return domain.Invalid(ErrInvalidHours, "hours", "must not exceed %.0f per call", domain.MaxUsageHoursPerOp)
	}

	return nil
}
