package create_assignment

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

const operation = "create_assignment"

// Request модель запроса на выделение мест клиенту
type Request struct {
	OwnerID        int64     // ID координатора из сессии
	ChunkID        int64     // ID чанка (bulkBookingId)
	CustomerID     int64     // ID клиента
	AssignedSpots  int       // Количество мест
	ValidFrom      time.Time // Начало периода (дата)
	ValidTo        time.Time // Конец периода (дата, включительно)
	Notes          *string   // Заметки (опционально)
	IdempotencyKey string    // Ключ идемпотентности (опционально, UUID)
}

// Response модель ответа с созданным суб-бронированием
type Response struct {
	SubBooking *domain.SubBooking // Ссылка на чанк разрешена и содержит пересчитанные счетчики
	Replayed   bool               // true, если результат возвращен по Idempotency-Key
}
