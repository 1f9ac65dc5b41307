package allocation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrChunkExpired возвращается, когда чанк истек и из него нельзя выделять места
	ErrChunkExpired = errors.New("allocation: chunk is expired")

	// ErrInvalidSpots возвращается, когда assignedSpots меньше минимума
	ErrInvalidSpots = errors.New("allocation: assigned spots below minimum")

	// ErrInsufficientSpots возвращается, когда в чанке не хватает свободных мест
	ErrInsufficientSpots = errors.New("allocation: not enough available spots")

	// ErrInvalidWindow возвращается, когда validFrom позже validTo
	ErrInvalidWindow = errors.New("allocation: validFrom is after validTo")

	// ErrOutsideChunkWindow возвращается, когда окно выходит за окно чанка
	ErrOutsideChunkWindow = errors.New("allocation: window is outside the chunk window")

	// ErrNotesTooLong возвращается, когда заметки длиннее допустимого
	ErrNotesTooLong = errors.New("allocation: notes are too long")

	// ErrCapacityConflict возвращается, когда атомарная фиксация отклонена:
	// другая аллокация успела занять места раньше
	ErrCapacityConflict = fmt.Errorf("allocation: spots no longer available, refresh and retry: %w", domain.ErrConflict)
)
