package update_assignment

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

const operation = "update_assignment"

// Request модель запроса на частичное изменение суб-бронирования
// nil означает "оставить текущее значение"
type Request struct {
	OwnerID       int64      // ID координатора из сессии
	SubBookingID  int64      // ID суб-бронирования
	AssignedSpots *int       // Новое количество мест
	ValidFrom     *time.Time // Новое начало периода
	ValidTo       *time.Time // Новый конец периода
	Notes         *string    // Новые заметки; пустая строка очищает
}

// IsEmpty сообщает, что запрос ничего не меняет
func (r *Request) IsEmpty() bool {
	return r.AssignedSpots == nil && r.ValidFrom == nil && r.ValidTo == nil && r.Notes == nil
}

// Response модель ответа с обновленным суб-бронированием
type Response struct {
	SubBooking *domain.SubBooking // Ссылка на чанк разрешена
}
