package expire_overdue

import "time"

// Request модель запроса на проход по просроченным записям
type Request struct {
	Now time.Time // Момент прохода; нулевое значение означает текущее время
}

// Response итоги прохода
type Response struct {
	ExpiredSubBookings int     // Суб-бронирования, переведенные в expired
	ReleasedSpots      int     // Места, возвращенные в чанки
	ExpiredChunks      int     // Чанки, переведенные в expired
	Failed             int     // Записи, которые не удалось обработать, повторятся на следующем проходе
	AffectedChunkIDs   []int64 // Чанки, счетчики которых пересчитаны
}
