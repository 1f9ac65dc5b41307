package change_assignment_status

import "github.com/m04kA/SMC-ParkingAllocationService/internal/domain"

const operation = "change_assignment_status"

// Request модель запроса на приостановку или возобновление суб-бронирования
type Request struct {
	OwnerID      int64                   // ID координатора из сессии
	SubBookingID int64                   // ID суб-бронирования
	Status       domain.SubBookingStatus // Целевой статус: suspended или active
}

// Response модель ответа с суб-бронированием в новом статусе
type Response struct {
	SubBooking *domain.SubBooking // Ссылка на чанк разрешена
	Changed    bool               // false, если суб-бронирование уже было в целевом статусе
}
