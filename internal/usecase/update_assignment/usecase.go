package update_assignment

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

// UseCase use case для изменения количества мест, дат или заметок суб-бронирования
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

// Execute выполняет use case обновления суб-бронирования
//
// Эффективная емкость = availableSpots + старые assignedSpots (если суб-бронирование активно).
// used_spots чанка меняется на (new - old) условным UPDATE в той же транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAssignment: owner=%d, subBooking=%d", req.OwnerID, req.SubBookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAssignment: validation failed: subBooking=%d: %v", req.SubBookingID, err)
		uc.metrics.Rejected(operation, allocation.Reason(err))
		return nil, err
	}

	now := uc.timeProvider.Now()
	var chunkID int64
	var updated *domain.SubBooking
	var updatedChunk *domain.Chunk

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем суб-бронирование и проверяем владельца
		current, err := uc.subBookingRepo.GetByIDForUpdate(txCtx, req.SubBookingID)
		if err != nil {
			if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
				return ErrSubBookingNotFound
			}
			return fmt.Errorf("%w: failed to get sub-booking: %w", ErrInternal, err)
		}
		chunkID = current.ChunkID()

		if current.OwnerID != req.OwnerID {
			return ErrAccessDenied
		}

		if !current.CanBeEdited() {
			return domain.Invalid(ErrSubBookingExpired, "status", "expired sub-booking cannot be edited")
		}

		// 2. Блокируем чанк
		chunk, err := uc.chunkRepo.GetByIDForUpdate(txCtx, chunkID)
		if err != nil {
			if errors.Is(err, chunkRepo.ErrChunkNotFound) {
				return ErrChunkNotFound
			}
			return fmt.Errorf("%w: failed to get chunk: %w", ErrInternal, err)
		}

		// 3. Та же проверка, что при создании, против эффективной емкости
		next := merge(current, req)
		capacity := effectiveCapacity(chunk, current)
		if err := allocation.Validate(chunk, next, capacity, now); err != nil {
			uc.logger.Warn("UpdateAssignment: rejected: chunk=%d, subBooking=%d, capacity=%d: %v",
				chunkID, req.SubBookingID, capacity, err)
			return err
		}

		// 4. Сохраняем и корректируем счетчик на (new - old)
		saved, err := uc.subBookingRepo.Update(txCtx, &domain.SubBooking{
			ID:            current.ID,
			Chunk:         current.Chunk,
			OwnerID:       current.OwnerID,
			CustomerID:    current.CustomerID,
			AssignedSpots: next.AssignedSpots,
			ValidFrom:     next.ValidFrom,
			ValidTo:       next.ValidTo,
			Status:        current.Status,
			UsageHours:    current.UsageHours,
			Notes:         next.Notes,
		})
		if err != nil {
			if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
				return ErrSubBookingNotFound
			}
			return fmt.Errorf("%w: failed to update sub-booking: %w", ErrInternal, err)
		}

		if current.HoldsCapacity() {
			if delta := next.AssignedSpots - current.AssignedSpots; delta != 0 {
				if err := uc.chunkRepo.AdjustUsedSpots(txCtx, chunkID, delta); err != nil {
					if errors.Is(err, chunkRepo.ErrCapacityExceeded) {
						return fmt.Errorf("%w: chunk=%d delta=%d", allocation.ErrCapacityConflict, chunkID, delta)
					}
					return fmt.Errorf("%w: failed to adjust used spots: %w", ErrInternal, err)
				}
			}
		}

		updatedChunk, err = uc.inventory.RecomputeUsage(txCtx, chunkID)
		if err != nil {
			return err
		}

		updated = saved
		return nil
	})

	if err != nil {
		return nil, uc.failure(req, chunkID, err)
	}

	updated.Chunk = domain.Resolved(updatedChunk)

	uc.metrics.Allocated(operation)
	uc.publisher.Publish(ctx, events.FromSubBooking(events.EventAllocationUpdated, updated, now))

	uc.logger.Info("UpdateAssignment: updated sub-booking id=%d, chunk=%d, spots=%d, available=%d",
		updated.ID, chunkID, updated.AssignedSpots, updatedChunk.AvailableSpots())

	return &Response{SubBooking: updated}, nil
}

// failure логирует ошибку с chunk id и sub-booking id и приводит ее к ошибке usecase
func (uc *UseCase) failure(req *Request, chunkID int64, err error) error {
	uc.metrics.Rejected(operation, allocation.Reason(err))

	switch {
	case allocation.IsCapacityConflict(err):
		uc.metrics.Conflict(operation)
		uc.logger.Warn("UpdateAssignment: capacity conflict: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
		if !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: %v", allocation.ErrCapacityConflict, err)
		}
		return err
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAccessDenied):
		uc.logger.Warn("UpdateAssignment: rejected: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
		return err
	default:
		uc.logger.Error("UpdateAssignment: failed: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
		if !errors.Is(err, ErrInternal) {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return err
	}
}
