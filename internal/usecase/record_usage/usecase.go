package record_usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	subBookingRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/subbooking"
)

// UseCase use case учета фактического использования суб-бронирования
type UseCase struct {
	subBookingRepo SubBookingRepository
	publisher      EventPublisher
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(subBookingRepo SubBookingRepository, publisher EventPublisher, logger Logger) *UseCase {
	return &UseCase{
		subBookingRepo: subBookingRepo,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute добавляет часы к usageHours и выставляет lastAccessDate
// Счетчики чанка не меняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordUsage: validation failed: subBooking=%d: %v", req.SubBookingID, err)
		return nil, err
	}

	sb, err := uc.subBookingRepo.GetByID(ctx, req.SubBookingID)
	if err != nil {
		if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
			return nil, ErrSubBookingNotFound
		}
		uc.logger.Error("RecordUsage: failed to get sub-booking id=%d: %v", req.SubBookingID, err)
		return nil, fmt.Errorf("%w: failed to get sub-booking: %w", ErrInternal, err)
	}

	if sb.OwnerID != req.OwnerID {
		uc.logger.Warn("RecordUsage: access denied: owner=%d, subBooking=%d", req.OwnerID, req.SubBookingID)
		return nil, ErrAccessDenied
	}

	if sb.IsExpired() {
		return nil, domain.Invalid(ErrSubBookingExpired, "subBookingId", "usage cannot be recorded for an expired sub-booking")
	}

	now := uc.timeProvider.Now()
	updated, err := uc.subBookingRepo.AddUsage(ctx, sb.ID, req.Hours, now)
	if err != nil {
		// Строка есть, но AddUsage не обновил ее: суб-бронирование успело истечь или было удалено
		if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
			uc.logger.Warn("RecordUsage: sub-booking id=%d changed concurrently", sb.ID)
			return nil, ErrSubBookingNotFound
		}
		uc.logger.Error("RecordUsage: failed to add usage: chunk=%d, subBooking=%d: %v", sb.ChunkID(), sb.ID, err)
		return nil, fmt.Errorf("%w: failed to add usage: %w", ErrInternal, err)
	}

	uc.publisher.Publish(ctx, events.FromSubBooking(events.EventUsageRecorded, updated, now))

	uc.logger.Info("RecordUsage: sub-booking id=%d, +%.2fh, total=%.2fh", updated.ID, req.Hours, updated.UsageHours)

	return &Response{SubBooking: updated}, nil
}
