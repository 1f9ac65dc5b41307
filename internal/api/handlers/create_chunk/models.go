package create_chunk

import (
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/service/chunks"
)

// CreateChunkRequest HTTP request model
type CreateChunkRequest struct {
	OwnerID     *int64  `json:"ownerId,omitempty"` // если передан, должен совпадать с координатором сессии
	ParkingName string  `json:"parkingName"`
	ChunkName   string  `json:"chunkName"`
	Company     string  `json:"company"`
	TotalSpots  int     `json:"totalSpots"`
	ValidFrom   string  `json:"validFrom"` // "2026-03-01"
	ValidTo     string  `json:"validTo"`   // "2026-03-31"
	VehicleType string  `json:"vehicleType"`
	Remarks     *string `json:"remarks,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateChunkRequest) ToServiceRequest(ownerID int64) (*chunks.CreateChunkRequest, error) {
	validFrom, err := handlers.ParseDate(r.ValidFrom)
	if err != nil {
		return nil, err
	}

	validTo, err := handlers.ParseDate(r.ValidTo)
	if err != nil {
		return nil, err
	}

	return &chunks.CreateChunkRequest{
		OwnerID:     ownerID,
		ParkingName: r.ParkingName,
		ChunkName:   r.ChunkName,
		Company:     r.Company,
		TotalSpots:  r.TotalSpots,
		ValidFrom:   validFrom,
		ValidTo:     validTo,
		VehicleType: domain.VehicleType(r.VehicleType),
		Remarks:     r.Remarks,
	}, nil
}
