package chunks

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// CreateChunkRequest модель запроса на создание чанка (покупка емкости)
type CreateChunkRequest struct {
	OwnerID     int64              // ID координатора
	ParkingName string             // Название парковки
	ChunkName   string             // Название чанка
	Company     string             // Компания-владелец парковки
	TotalSpots  int                // Количество купленных мест
	ValidFrom   time.Time          // Начало периода (дата)
	ValidTo     time.Time          // Конец периода (дата, включительно)
	VehicleType domain.VehicleType // Тип транспорта
	Remarks     *string            // Примечания (опционально)
}

// ToDomain конвертирует запрос в новый чанк со свободной емкостью
func (r *CreateChunkRequest) ToDomain() *domain.Chunk {
	return &domain.Chunk{
		OwnerID:     r.OwnerID,
		ParkingName: r.ParkingName,
		ChunkName:   r.ChunkName,
		Company:     r.Company,
		VehicleType: r.VehicleType,
		TotalSpots:  r.TotalSpots,
		UsedSpots:   0,
		ValidFrom:   domain.DateOnly(r.ValidFrom),
		ValidTo:     domain.DateOnly(r.ValidTo),
		Status:      domain.ChunkStatusActive,
		Remarks:     r.Remarks,
	}
}
