package chunks

import (
	"strings"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// validateCreateRequest валидирует данные нового чанка
func validateCreateRequest(req *CreateChunkRequest) error {
	if req.OwnerID <= 0 {
		return domain.Invalid(ErrInvalidInput, "ownerId", "must be positive")
	}

	textFields := []struct {
		name  string
		value string
	}{
		{"parkingName", req.ParkingName},
		{"chunkName", req.ChunkName},
		{"company", req.Company},
	}
	for _, f := range textFields {
		if strings.TrimSpace(f.value) == "" {
			return domain.Invalid(ErrInvalidInput, f.name, "is required")
		}
		if len(f.value) > domain.MaxNameLength {
			return domain.Invalid(ErrInvalidInput, f.name, "must be at most %d characters", domain.MaxNameLength)
		}
	}

	if req.TotalSpots < domain.MinTotalSpots {
		return domain.Invalid(ErrInvalidInput, "totalSpots", "must be at least %d", domain.MinTotalSpots)
	}
	if req.TotalSpots > domain.MaxTotalSpots {
		return domain.Invalid(ErrInvalidInput, "totalSpots", "must be at most %d", domain.MaxTotalSpots)
	}

	if req.ValidFrom.IsZero() || req.ValidTo.IsZero() {
		return domain.Invalid(ErrInvalidInput, "validFrom", "validFrom and validTo are required")
	}
	if domain.DateOnly(req.ValidFrom).After(domain.DateOnly(req.ValidTo)) {
		return domain.Invalid(ErrInvalidInput, "validTo", "end date must not be before start date")
	}

	if !req.VehicleType.IsValid() {
		return domain.Invalid(ErrInvalidInput, "vehicleType", "must be one of %v", domain.VehicleTypes)
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxNotesLength {
		return domain.Invalid(ErrInvalidInput, "remarks", "must be at most %d characters", domain.MaxNotesLength)
	}

	return nil
}
