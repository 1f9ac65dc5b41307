package idempotency

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

var (
	// ErrInProgress возвращается, когда запрос с тем же ключом еще выполняется
	ErrInProgress = fmt.Errorf("idempotency: request with this key is still in progress: %w", domain.ErrConflict)

	// ErrStore возвращается при ошибках хранилища ключей
	ErrStore = errors.New("idempotency: store error")
)
