package change_assignment_status

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

// UseCase use case для ручной смены статуса суб-бронирования (active <-> suspended)
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

// Execute выполняет смену статуса
//
// active -> suspended возвращает места в чанк.
// suspended -> active заново занимает места: проверяются емкость чанка и окно дат.
// expired терминален.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeAssignmentStatus: owner=%d, subBooking=%d, status=%s",
		req.OwnerID, req.SubBookingID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeAssignmentStatus: validation failed: subBooking=%d: %v", req.SubBookingID, err)
		uc.metrics.Rejected(operation, allocation.Reason(err))
		return nil, err
	}

	now := uc.timeProvider.Now()
	var chunkID int64
	var result *domain.SubBooking
	var updatedChunk *domain.Chunk
	changed := false

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

		chunk, err := uc.chunkRepo.GetByIDForUpdate(txCtx, chunkID)
		if err != nil {
			if errors.Is(err, chunkRepo.ErrChunkNotFound) {
				return ErrChunkNotFound
			}
			return fmt.Errorf("%w: failed to get chunk: %w", ErrInternal, err)
		}

		// Повторная установка того же статуса ничего не меняет
		if sb.Status == req.Status {
			sb.Chunk = domain.Resolved(chunk)
			result = sb
			updatedChunk = chunk
			return nil
		}

		if !sb.CanTransitionTo(req.Status) {
			return domain.Invalid(ErrInvalidTransition, "status", "cannot change status from %s to %s", sb.Status, req.Status)
		}

		delta := -sb.AssignedSpots
		if req.Status == domain.SubBookingStatusActive {
			if sb.IsOverdue(now) {
				return domain.Invalid(ErrSubBookingOverdue, "validTo", "sub-booking ended on %s", sb.ValidTo.Format(domain.DateFormat))
			}

			err := allocation.Validate(chunk, allocation.Assignment{
				AssignedSpots: sb.AssignedSpots,
				ValidFrom:     sb.ValidFrom,
				ValidTo:       sb.ValidTo,
			}, chunk.AvailableSpots(), now)
			if err != nil {
				return err
			}
			delta = sb.AssignedSpots
		}

		if err := uc.subBookingRepo.UpdateStatus(txCtx, sb.ID, req.Status); err != nil {
			if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
				return ErrSubBookingNotFound
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		if err := uc.chunkRepo.AdjustUsedSpots(txCtx, chunkID, delta); err != nil {
			if errors.Is(err, chunkRepo.ErrCapacityExceeded) {
				return fmt.Errorf("%w: chunk=%d delta=%d", allocation.ErrCapacityConflict, chunkID, delta)
			}
			return fmt.Errorf("%w: failed to adjust used spots: %w", ErrInternal, err)
		}

		updatedChunk, err = uc.inventory.RecomputeUsage(txCtx, chunkID)
		if err != nil {
			return err
		}

		sb.Status = req.Status
		result = sb
		changed = true
		return nil
	})

	if err != nil {
		return nil, uc.failure(req, chunkID, err)
	}

	result.Chunk = domain.Resolved(updatedChunk)

	if changed {
		uc.metrics.Allocated(operation)
		uc.publisher.Publish(ctx, events.FromSubBooking(events.EventAllocationStatusChanged, result, now))
		uc.logger.Info("ChangeAssignmentStatus: sub-booking id=%d is now %s, chunk=%d, available=%d",
			result.ID, result.Status, chunkID, updatedChunk.AvailableSpots())
	}

	return &Response{SubBooking: result, Changed: changed}, nil
}

// failure логирует ошибку с chunk id и sub-booking id и приводит ее к ошибке usecase
func (uc *UseCase) failure(req *Request, chunkID int64, err error) error {
	uc.metrics.Rejected(operation, allocation.Reason(err))

	switch {
	case allocation.IsCapacityConflict(err):
		uc.metrics.Conflict(operation)
		uc.logger.Warn("ChangeAssignmentStatus: capacity conflict: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
		if !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: %v", allocation.ErrCapacityConflict, err)
		}
		return err
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAccessDenied):
		uc.logger.Warn("ChangeAssignmentStatus: rejected: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
		return err
	default:
		uc.logger.Error("ChangeAssignmentStatus: failed: chunk=%d, subBooking=%d: %v", chunkID, req.SubBookingID, err)
		if !errors.Is(err, ErrInternal) {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return err
	}
}
