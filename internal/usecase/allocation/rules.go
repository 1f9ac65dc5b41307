package allocation

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/txmanager"
)

// Assignment параметры выделения мест из чанка
type Assignment struct {
	AssignedSpots int
	ValidFrom     time.Time
	ValidTo       time.Time
	Notes         *string
}

// Validate проверяет выделение против чанка в фиксированном порядке:
// чанк не истек, assignedSpots >= 1, assignedSpots <= capacity,
// validFrom <= validTo, окно внутри окна чанка, длина заметок.
//
// capacity - эффективная емкость: для создания это availableSpots,
// для редактирования активного суб-бронирования availableSpots + старые assignedSpots.
func Validate(chunk *domain.Chunk, a Assignment, capacity int, now time.Time) error {
	if chunk.IsExpired() || chunk.IsOverdue(now) {
		return domain.Invalid(ErrChunkExpired, "bulkBookingId", "chunk %d is expired", chunk.ID)
	}

	if a.AssignedSpots < domain.MinAssignedSpots {
		return domain.Invalid(ErrInvalidSpots, "assignedSpots", "must be at least %d", domain.MinAssignedSpots)
	}

	if a.AssignedSpots > capacity {
		return domain.Invalid(ErrInsufficientSpots, "assignedSpots",
			"cannot assign more than %d available spots", max(capacity, 0))
	}

	if a.ValidFrom.IsZero() || a.ValidTo.IsZero() {
		return domain.Invalid(ErrInvalidWindow, "validFrom", "validFrom and validTo are required")
	}

	if domain.DateOnly(a.ValidFrom).After(domain.DateOnly(a.ValidTo)) {
		return domain.Invalid(ErrInvalidWindow, "validTo", "end date must not be before start date")
	}

	if !chunk.Contains(a.ValidFrom, a.ValidTo) {
		return domain.Invalid(ErrOutsideChunkWindow, "validFrom",
			"dates must be within the chunk window %s - %s",
			chunk.ValidFrom.Format(domain.DateFormat), chunk.ValidTo.Format(domain.DateFormat))
	}

	if a.Notes != nil && len(*a.Notes) > domain.MaxNotesLength {
		return domain.Invalid(ErrNotesTooLong, "notes", "must be at most %d characters", domain.MaxNotesLength)
	}

	return nil
}

// NormalizeNotes обрезает пробелы; пустые заметки хранятся как NULL
func NormalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// IsCapacityConflict распознает отказ атомарного обновления счетчиков
// и конфликт сериализации транзакции
func IsCapacityConflict(err error) bool {
	return errors.Is(err, chunkRepo.ErrCapacityExceeded) ||
		errors.Is(err, txmanager.ErrSerialization) ||
		errors.Is(err, domain.ErrConflict)
}

// Reason короткая метка причины отказа для метрик
func Reason(err error) string {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Field
	case IsCapacityConflict(err):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAccessDenied):
		return "access_denied"
	default:
		return "internal"
	}
}
