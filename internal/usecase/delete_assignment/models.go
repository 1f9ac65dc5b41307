package delete_assignment

import "github.com/m04kA/SMC-ParkingAllocationService/internal/domain"

const operation = "delete_assignment"

// Request модель запроса на удаление суб-бронирования
type Request struct {
	OwnerID      int64 // ID координатора из сессии
	SubBookingID int64 // ID суб-бронирования
}

// Response модель ответа: состояние чанка после возврата мест
type Response struct {
	Chunk         *domain.Chunk
	ReleasedSpots int
}
