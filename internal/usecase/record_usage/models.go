package record_usage

import "github.com/m04kA/SMC-ParkingAllocationService/internal/domain"

// Request модель запроса на запись использования
type Request struct {
	OwnerID      int64   // ID координатора из сессии
	SubBookingID int64   // ID суб-бронирования
	Hours        float64 // Часы использования, 0 < hours <= 24
}

// Response модель ответа
type Response struct {
	SubBooking *domain.SubBooking // Суб-бронирование с обновленными usageHours и lastAccessDate
}
