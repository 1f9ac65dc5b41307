package delete_assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	subBookingRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/subbooking"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/allocation"
)

// UseCase use case для удаления суб-бронирования с возвратом мест в чанк
type UseCase struct {
	chunkRepo      ChunkRepository
	subBookingRepo SubBookingRepository
	inventory      ChunkInventory
	publisher      EventPublisher
	metrics        Metrics
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	chunkRepo ChunkRepository,
	subBookingRepo SubBookingRepository,
	inventory ChunkInventory,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		chunkRepo:      chunkRepo,
		subBookingRepo: subBookingRepo,
		inventory:      inventory,
		publisher:      publisher,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case удаления суб-бронирования
// Места возвращаются в чанк ровно один раз: повторное удаление вернет ErrSubBookingNotFound
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteAssignment: owner=%d, subBooking=%d", req.OwnerID, req.SubBookingID)

	if req.OwnerID <= 0 || req.SubBookingID <= 0 {
		err := domain.Invalid(ErrInvalidInput, "subBookingId", "ownerId and subBookingId must be positive")
		uc.metrics.Rejected(operation, allocation.Reason(err))
		return nil, err
	}

	var chunkID int64
	var deleted *domain.SubBooking
	var updatedChunk *domain.Chunk
	released := 0

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sb, err := uc.subBookingRepo.GetByIDForUpdate(txCtx, req.SubBookingID)
		if err != nil {
			if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
				return ErrSubBookingNotFound
			}
			return fmt.Errorf("%w: failed to get sub-booking: %w", ErrInternal, err)
		}
		chunkID = sb.ChunkID()

		if sb.OwnerID != req.OwnerID {
			return ErrAccessDenied
		}

		// Блокируем чанк до изменения счетчика
		if _, err := uc.chunkRepo.GetByIDForUpdate(txCtx, chunkID); err != nil && !errors.Is(err, chunkRepo.ErrChunkNotFound) {
			return fmt.Errorf("%w: failed to lock chunk: %w", ErrInternal, err)
		}

		if err := uc.subBookingRepo.Delete(txCtx, sb.ID); err != nil {
			if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
				return ErrSubBookingNotFound
			}
			return fmt.Errorf("%w: failed to delete sub-booking: %w", ErrInternal, err)
		}

		// Места держат только активные суб-бронирования
		if sb.HoldsCapacity() {
			if err := uc.chunkRepo.AdjustUsedSpots(txCtx, chunkID, -sb.AssignedSpots); err != nil {
				if errors.Is(err, chunkRepo.ErrCapacityExceeded) {
					return fmt.Errorf("%w: chunk=%d release=%d", allocation.ErrCapacityConflict, chunkID, sb.AssignedSpots)
				}
				return fmt.Errorf("%w: failed to adjust used spots: %w", ErrInternal, err)
			}
			released = sb.AssignedSpots
		}

		updatedChunk, err = uc.inventory.RecomputeUsage(txCtx, chunkID)
		if err != nil {
			return err
		}

		deleted = sb
		return nil
	})

	if err != nil {
		uc.metrics.Rejected(operation, allocation.Reason(err))
		switch {
		case allocation.IsCapacityConflict(err):
			uc.metrics.Conflict(operation)
			uc.logger.Warn("DeleteAssignment: capacity conflict: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
			if !errors.Is(err, domain.ErrConflict) {
				return nil, fmt.Errorf("%w: %v", allocation.ErrCapacityConflict, err)
			}
			return nil, err
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAccessDenied):
			uc.logger.Warn("DeleteAssignment: rejected: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
			return nil, err
		default:
			uc.logger.Error("DeleteAssignment: failed: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
			if !errors.Is(err, ErrInternal) {
				return nil, fmt.Errorf("%w: %v", ErrInternal, err)
			}
			return nil, err
		}
	}

	uc.metrics.Allocated(operation)
	uc.publisher.Publish(ctx, events.FromSubBooking(events.EventAllocationDeleted, deleted, uc.timeProvider.Now()))

	uc.logger.Info("DeleteAssignment: deleted sub-booking id=%d, chunk=%d, released=%d, available=%d, status=%s",
		req.SubBookingID, chunkID, released, updatedChunk.AvailableSpots(), updatedChunk.Status)

	return &Response{Chunk: updatedChunk, ReleasedSpots: released}, nil
}
