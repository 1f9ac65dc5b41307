package update_sub_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	updateAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/update_assignment"
)

// UpdateSubBookingRequest HTTP request model, отсутствующие поля не меняются
type UpdateSubBookingRequest struct {
	AssignedSpots *int    `json:"assignedSpots,omitempty"`
	ValidFrom     *string `json:"validFrom,omitempty"`
	ValidTo       *string `json:"validTo,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateSubBookingRequest) ToUseCaseRequest(ownerID, subBookingID int64) (*updateAssignment.Request, error) {
	req := &updateAssignment.Request{
		OwnerID:       ownerID,
		SubBookingID:  subBookingID,
		AssignedSpots: r.AssignedSpots,
		Notes:         r.Notes,
	}

	var err error
	if req.ValidFrom, err = parseOptionalDate(r.ValidFrom); err != nil {
		return nil, err
	}
	if req.ValidTo, err = parseOptionalDate(r.ValidTo); err != nil {
		return nil, err
	}

	return req, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := handlers.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
