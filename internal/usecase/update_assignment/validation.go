package update_assignment

import (
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/allocation"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/ptr"
)

// validateRequest валидирует идентификаторы запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return domain.Invalid(ErrInvalidInput, "ownerId", "must be positive")
	}

	if req.SubBookingID <= 0 {
		return domain.Invalid(ErrInvalidInput, "subBookingId", "must be positive")
	}

	if req.IsEmpty() {
		return domain.Invalid(ErrInvalidInput, "body", "at least one field must be provided")
	}

	return nil
}

// merge накладывает частичные поля запроса на текущее состояние
func merge(current *domain.SubBooking, req *Request) allocation.Assignment {
	a := allocation.Assignment{
		AssignedSpots: ptr.Value(req.AssignedSpots, current.AssignedSpots),
		ValidFrom:     current.ValidFrom,
		ValidTo:       current.ValidTo,
		Notes:         current.Notes,
	}

	if req.ValidFrom != nil {
		a.ValidFrom = domain.DateOnly(*req.ValidFrom)
	}
	if req.ValidTo != nil {
		a.ValidTo = domain.DateOnly(*req.ValidTo)
	}
	if req.Notes != nil {
		a.Notes = allocation.NormalizeNotes(req.Notes)
	}

	return a
}

// effectiveCapacity емкость, доступная суб-бронированию при редактировании:
// активное суб-бронирование сначала возвращает свои места в чанк
func effectiveCapacity(chunk *domain.Chunk, current *domain.SubBooking) int {
	if current.HoldsCapacity() {
		return chunk.AvailableSpots() + current.AssignedSpots
	}
	return chunk.AvailableSpots()
}
