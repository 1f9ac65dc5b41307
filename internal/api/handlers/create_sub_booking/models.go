package create_sub_booking

import (
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	createAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/create_assignment"
)

// HeaderIdempotencyKey заголовок с ключом идемпотентности (UUID)
const HeaderIdempotencyKey = "Idempotency-Key"

// CreateSubBookingRequest HTTP request model
type CreateSubBookingRequest struct {
	BulkBookingID int64   `json:"bulkBookingId"`
	OwnerID       *int64  `json:"ownerId,omitempty"` // если передан, должен совпадать с координатором сессии
	CustomerID    int64   `json:"customerId"`
	AssignedSpots int     `json:"assignedSpots"`
	ValidFrom     string  `json:"validFrom"` // "2026-03-05"
	ValidTo       string  `json:"validTo"`   // "2026-03-20"
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSubBookingRequest) ToUseCaseRequest(ownerID int64, idempotencyKey string) (*createAssignment.Request, error) {
	validFrom, err := handlers.ParseDate(r.ValidFrom)
	if err != nil {
		return nil, err
	}

	validTo, err := handlers.ParseDate(r.ValidTo)
	if err != nil {
		return nil, err
	}

	return &createAssignment.Request{
		OwnerID:        ownerID,
		ChunkID:        r.BulkBookingID,
		CustomerID:     r.CustomerID,
		AssignedSpots:  r.AssignedSpots,
		ValidFrom:      validFrom,
		ValidTo:        validTo,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
	}, nil
}
