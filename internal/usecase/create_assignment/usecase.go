package create_assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	customerClient "github.com/m04kA/SMC-ParkingAllocationService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/allocation"
)

// UseCase use case для выделения мест клиенту из чанка
type UseCase struct {
	chunkRepo      ChunkRepository
	subBookingRepo SubBookingRepository
	inventory      ChunkInventory
	customerClient CustomerServiceClient
	idempotency    IdempotencyStore
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
	customerClient CustomerServiceClient,
	idempotency IdempotencyStore,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		chunkRepo:      chunkRepo,
		subBookingRepo: subBookingRepo,
		inventory:      inventory,
		customerClient: customerClient,
		idempotency:    idempotency,
		publisher:      publisher,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания суб-бронирования
//
// Предварительная проверка идет вне транзакции (включая запрос в справочник клиентов),
// затем в SERIALIZABLE транзакции строка чанка блокируется, проверка повторяется
// по актуальным счетчикам и used_spots увеличивается условным UPDATE.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAssignment: owner=%d, chunk=%d, customer=%d, spots=%d, window=%s..%s",
		req.OwnerID, req.ChunkID, req.CustomerID, req.AssignedSpots,
		req.ValidFrom.Format(domain.DateFormat), req.ValidTo.Format(domain.DateFormat))

	// 1. Валидация идентификаторов
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAssignment: validation failed: chunk=%d: %v", req.ChunkID, err)
		uc.metrics.Rejected(operation, allocation.Reason(err))
		return nil, err
	}

	// 2. Ключ идемпотентности
	if req.IdempotencyKey != "" {
		replayID, started, err := uc.idempotency.Begin(ctx, operation, req.OwnerID, req.IdempotencyKey)
		if err != nil {
			return nil, uc.idempotencyError(req, err)
		}
		if !started {
			return uc.replay(ctx, req, replayID)
		}
	}

	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.Rejected(operation, allocation.Reason(err))
		if req.IdempotencyKey != "" {
			if abortErr := uc.idempotency.Abort(ctx, operation, req.OwnerID, req.IdempotencyKey); abortErr != nil {
				uc.logger.Warn("CreateAssignment: failed to release idempotency key: %v", abortErr)
			}
		}
		return nil, err
	}

	if req.IdempotencyKey != "" {
		// Места уже выделены: ключ сохраняется и после отмены запроса клиентом,
		// иначе после истечения pending повтор создаст второе суб-бронирование
		if err := uc.idempotency.Complete(context.WithoutCancel(ctx), operation, req.OwnerID, req.IdempotencyKey, resp.SubBooking.ID); err != nil {
			uc.logger.Error("CreateAssignment: failed to store idempotency key=%s, owner=%d for sub-booking id=%d, chunk=%d: %v",
				req.IdempotencyKey, req.OwnerID, resp.SubBooking.ID, req.ChunkID, err)
		}
	}

	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	assignment := allocation.Assignment{
		AssignedSpots: req.AssignedSpots,
		ValidFrom:     domain.DateOnly(req.ValidFrom),
		ValidTo:       domain.DateOnly(req.ValidTo),
		Notes:         allocation.NormalizeNotes(req.Notes),
	}

	// 3. Чанк существует, принадлежит координатору и проходит проверки емкости и дат
	chunk, err := uc.chunkRepo.GetByID(ctx, req.ChunkID)
	if err != nil {
		return nil, uc.chunkError(req, err)
	}

	if chunk.OwnerID != req.OwnerID {
		uc.logger.Warn("CreateAssignment: chunk=%d belongs to owner=%d, requested by %d",
			req.ChunkID, chunk.OwnerID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	if err := allocation.Validate(chunk, assignment, chunk.AvailableSpots(), now); err != nil {
		uc.logger.Warn("CreateAssignment: rejected: chunk=%d, available=%d: %v",
			req.ChunkID, chunk.AvailableSpots(), err)
		return nil, err
	}

	// 4. Клиент существует в справочнике
	if _, err := uc.customerClient.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAssignment: customer id=%d not found, chunk=%d", req.CustomerID, req.ChunkID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAssignment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
	}

	var created *domain.SubBooking
	var updatedChunk *domain.Chunk

	// 5. Фиксация под блокировкой чанка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		locked, err := uc.chunkRepo.GetByIDForUpdate(txCtx, req.ChunkID)
		if err != nil {
			return uc.chunkError(req, err)
		}

		if err := allocation.Validate(locked, assignment, locked.AvailableSpots(), now); err != nil {
			if errors.Is(err, allocation.ErrInsufficientSpots) {
				return fmt.Errorf("%w: chunk=%d available=%d requested=%d",
					allocation.ErrCapacityConflict, req.ChunkID, locked.AvailableSpots(), req.AssignedSpots)
			}
			return err
		}

		sb, err := uc.subBookingRepo.Create(txCtx, &domain.SubBooking{
			Chunk:         domain.Unresolved(req.ChunkID),
			OwnerID:       req.OwnerID,
			CustomerID:    req.CustomerID,
			AssignedSpots: assignment.AssignedSpots,
			ValidFrom:     assignment.ValidFrom,
			ValidTo:       assignment.ValidTo,
			Status:        domain.SubBookingStatusActive,
			Notes:         assignment.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create sub-booking: %w", ErrInternal, err)
		}

		if err := uc.chunkRepo.AdjustUsedSpots(txCtx, req.ChunkID, assignment.AssignedSpots); err != nil {
			if errors.Is(err, chunkRepo.ErrCapacityExceeded) {
				return fmt.Errorf("%w: chunk=%d requested=%d", allocation.ErrCapacityConflict, req.ChunkID, req.AssignedSpots)
			}
			return fmt.Errorf("%w: failed to adjust used spots: %w", ErrInternal, err)
		}

		updatedChunk, err = uc.inventory.RecomputeUsage(txCtx, req.ChunkID)
		if err != nil {
			return err
		}

		created = sb
		return nil
	})

	if err != nil {
		if allocation.IsCapacityConflict(err) {
			uc.metrics.Conflict(operation)
			uc.logger.Warn("CreateAssignment: capacity conflict: chunk=%d, customer=%d: %v",
				req.ChunkID, req.CustomerID, err)
			if !errors.Is(err, domain.ErrConflict) {
				return nil, fmt.Errorf("%w: %v", allocation.ErrCapacityConflict, err)
			}
			return nil, err
		}
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAssignment: rejected in transaction: chunk=%d: %v", req.ChunkID, err)
			return nil, err
		}
		uc.logger.Error("CreateAssignment: failed: chunk=%d, customer=%d: %v", req.ChunkID, req.CustomerID, err)
		if !errors.Is(err, ErrInternal) {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	created.Chunk = domain.Resolved(updatedChunk)

	uc.metrics.Allocated(operation)
	uc.publisher.Publish(ctx, events.FromSubBooking(events.EventAllocationCreated, created, now))

	uc.logger.Info("CreateAssignment: created sub-booking id=%d, chunk=%d, available=%d, status=%s",
		created.ID, req.ChunkID, updatedChunk.AvailableSpots(), updatedChunk.Status)

	return &Response{SubBooking: created}, nil
}

// replay возвращает результат уже выполненного запроса с тем же ключом
func (uc *UseCase) replay(ctx context.Context, req *Request, subBookingID int64) (*Response, error) {
	sb, err := uc.subBookingRepo.GetByID(ctx, subBookingID)
	if err != nil {
		uc.logger.Error("CreateAssignment: failed to load replayed sub-booking id=%d: %v", subBookingID, err)
		return nil, fmt.Errorf("%w: failed to load replayed sub-booking: %w", ErrInternal, err)
	}

	if chunk, err := uc.chunkRepo.GetByID(ctx, sb.ChunkID()); err == nil {
		sb.Chunk = sb.Chunk.Resolve(chunk)
	}

	uc.logger.Info("CreateAssignment: replayed sub-booking id=%d for key=%s", sb.ID, req.IdempotencyKey)
	return &Response{SubBooking: sb, Replayed: true}, nil
}

func (uc *UseCase) idempotencyError(req *Request, err error) error {
	if errors.Is(err, domain.ErrConflict) {
		uc.logger.Warn("CreateAssignment: key=%s still in progress, chunk=%d", req.IdempotencyKey, req.ChunkID)
		return ErrRequestInProgress
	}
	uc.logger.Error("CreateAssignment: idempotency store error for key=%s: %v", req.IdempotencyKey, err)
	return fmt.Errorf("%w: idempotency store: %w", ErrInternal, err)
}

func (uc *UseCase) chunkError(req *Request, err error) error {
	if errors.Is(err, chunkRepo.ErrChunkNotFound) {
		uc.logger.Warn("CreateAssignment: chunk id=%d not found", req.ChunkID)
		return ErrChunkNotFound
	}
	uc.logger.Error("CreateAssignment: failed to get chunk id=%d: %v", req.ChunkID, err)
	return fmt.Errorf("%w: failed to get chunk: %w", ErrInternal, err)
}
