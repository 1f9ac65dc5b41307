package expire_overdue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	subBookingRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/subbooking"
)

// errSkipped суб-бронирование уже обработано другим проходом
var errSkipped = errors.New("expire_overdue: already expired")

// UseCase переводит просроченные суб-бронирования и чанки в терминальный статус expired
type UseCase struct {
	chunkRepo      ChunkRepository
	subBookingRepo SubBookingRepository
	inventory      ChunkInventory
	publisher      EventPublisher
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
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		chunkRepo:      chunkRepo,
		subBookingRepo: subBookingRepo,
		inventory:      inventory,
		publisher:      publisher,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет один проход
//
// Каждое суб-бронирование и каждый чанк обрабатывается в своей serializable транзакции.
// Ошибка одной записи логируется и не прерывает проход.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := req.Now
	if now.IsZero() {
		now = uc.timeProvider.Now()
	}

	overdue, err := uc.subBookingRepo.ListOverdue(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireOverdue: failed to list overdue sub-bookings: %v", err)
		return nil, fmt.Errorf("%w: sub-bookings: %v", ErrListOverdue, err)
	}

	// Чанки выбираются до прохода по суб-бронированиям: пересчет внутри прохода сам переводит их в expired
	chunkIDs, err := uc.chunkRepo.ListOverdueIDs(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireOverdue: failed to list overdue chunks: %v", err)
		return nil, fmt.Errorf("%w: chunks: %v", ErrListOverdue, err)
	}

	resp := &Response{}
	affected := make(map[int64]struct{})

	for _, candidate := range overdue {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		sb, released, err := uc.expireSubBooking(ctx, candidate.ID, now)
		if errors.Is(err, errSkipped) {
			continue
		}
		if err != nil {
			resp.Failed++
			uc.logger.Error("ExpireOverdue: failed to expire sub-booking: chunk=%d, subBooking=%d: %v",
				candidate.ChunkID(), candidate.ID, err)
			continue
		}

		resp.ExpiredSubBookings++
		resp.ReleasedSpots += released
		affected[sb.ChunkID()] = struct{}{}
		uc.publisher.Publish(ctx, events.FromSubBooking(events.EventAllocationExpired, sb, now))
	}

	for _, chunkID := range chunkIDs {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		chunk, err := uc.inventory.RecomputeUsage(ctx, chunkID)
		if err != nil {
			resp.Failed++
			uc.logger.Error("ExpireOverdue: failed to expire chunk=%d: %v", chunkID, err)
			continue
		}
		if chunk.IsExpired() {
			resp.ExpiredChunks++
		}
		affected[chunkID] = struct{}{}
	}

	resp.AffectedChunkIDs = make([]int64, 0, len(affected))
	for id := range affected {
		resp.AffectedChunkIDs = append(resp.AffectedChunkIDs, id)
	}
	sort.Slice(resp.AffectedChunkIDs, func(i, j int) bool { return resp.AffectedChunkIDs[i] < resp.AffectedChunkIDs[j] })

	if resp.ExpiredSubBookings > 0 || resp.ExpiredChunks > 0 || resp.Failed > 0 {
		uc.logger.Info("ExpireOverdue: subBookings=%d, released=%d, chunks=%d, failed=%d",
			resp.ExpiredSubBookings, resp.ReleasedSpots, resp.ExpiredChunks, resp.Failed)
	}

	return resp, nil
}

// expireSubBooking переводит одно суб-бронирование в expired и пересчитывает его чанк
func (uc *UseCase) expireSubBooking(ctx context.Context, id int64, now time.Time) (*domain.SubBooking, int, error) {
	var result *domain.SubBooking
	released := 0

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sb, err := uc.subBookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, subBookingRepo.ErrSubBookingNotFound) {
				return errSkipped
			}
			return fmt.Errorf("%w: failed to get sub-booking: %w", ErrInternal, err)
		}

		// Запись могли изменить между выборкой и блокировкой
		if sb.IsExpired() || !sb.IsOverdue(now) {
			return errSkipped
		}

		chunkID := sb.ChunkID()
		if _, err := uc.chunkRepo.GetByIDForUpdate(txCtx, chunkID); err != nil && !errors.Is(err, chunkRepo.ErrChunkNotFound) {
			return fmt.Errorf("%w: failed to lock chunk: %w", ErrInternal, err)
		}

		if err := uc.subBookingRepo.UpdateStatus(txCtx, sb.ID, domain.SubBookingStatusExpired); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		if sb.HoldsCapacity() {
			if err := uc.chunkRepo.AdjustUsedSpots(txCtx, chunkID, -sb.AssignedSpots); err != nil {
				return fmt.Errorf("%w: failed to release spots: %w", ErrInternal, err)
			}
			released = sb.AssignedSpots
		}

		if _, err := uc.inventory.RecomputeUsage(txCtx, chunkID); err != nil {
			return err
		}

		sb.Status = domain.SubBookingStatusExpired
		result = sb
		return nil
	})

	if err != nil {
		return nil, 0, err
	}
	return result, released, nil
}
