package chunks

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
)

// Service инвентарь купленной емкости: чанки и их счетчики
type Service struct {
	chunkRepo      ChunkRepository
	subBookingRepo SubBookingRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса чанков
func NewService(
	chunkRepo ChunkRepository,
	subBookingRepo SubBookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		chunkRepo:      chunkRepo,
		subBookingRepo: subBookingRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает чанк с used_spots = 0 и статусом active
func (s *Service) Create(ctx context.Context, req *CreateChunkRequest) (*domain.Chunk, error) {
	s.logger.Info("CreateChunk: owner=%d, parking=%q, chunk=%q, spots=%d",
		req.OwnerID, req.ParkingName, req.ChunkName, req.TotalSpots)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("CreateChunk: validation failed: %v", err)
		return nil, err
	}

	created, err := s.chunkRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("CreateChunk: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateChunk: successfully created chunk id=%d", created.ID)
	return created, nil
}

// GetByID получает чанк координатора по ID
func (s *Service) GetByID(ctx context.Context, id, ownerID int64) (*domain.Chunk, error) {
	chunk, err := s.chunkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, chunkRepo.ErrChunkNotFound) {
			s.logger.Warn("GetChunk: chunk id=%d not found", id)
			return nil, ErrChunkNotFound
		}
		s.logger.Error("GetChunk: repository error for chunk id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if chunk.OwnerID != ownerID {
		s.logger.Warn("GetChunk: chunk id=%d belongs to owner=%d, requested by %d", id, chunk.OwnerID, ownerID)
		return nil, ErrAccessDenied
	}

	return chunk, nil
}

// ListByOwner получает все чанки координатора
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Chunk, error) {
	chunks, err := s.chunkRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListChunks: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListChunks: found %d chunks for owner=%d", len(chunks), ownerID)
	return chunks, nil
}

// ListAvailable получает чанки, из которых можно выделять места сегодня
func (s *Service) ListAvailable(ctx context.Context, ownerID int64) ([]*domain.Chunk, error) {
	today := domain.DateOnly(s.timeProvider.Now())

	chunks, err := s.chunkRepo.ListAvailable(ctx, ownerID, today)
	if err != nil {
		s.logger.Error("ListAvailableChunks: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListAvailableChunks: found %d available chunks for owner=%d", len(chunks), ownerID)
	return chunks, nil
}

// ListSubBookings получает суб-бронирования чанка с разрешенной ссылкой на чанк
func (s *Service) ListSubBookings(ctx context.Context, chunkID, ownerID int64) ([]*domain.SubBooking, error) {
	chunk, err := s.GetByID(ctx, chunkID, ownerID)
	if err != nil {
		return nil, err
	}

	subBookings, err := s.subBookingRepo.ListByChunk(ctx, chunkID)
	if err != nil {
		s.logger.Error("ListSubBookings: repository error for chunk id=%d: %v", chunkID, err)
		return nil, fmt.Errorf("%w: ListSubBookings - repository error: %w", ErrInternal, err)
	}

	for _, sb := range subBookings {
		sb.Chunk = sb.Chunk.Resolve(chunk)
	}

	return subBookings, nil
}

// RecomputeUsage пересчитывает used_spots и статус чанка по активным суб-бронированиям
//
// Выполняется внутри транзакции вызывающего (или открывает свою SERIALIZABLE).
// Строка чанка блокируется, поэтому сумма и запись видят одно и то же состояние.
// Expired не откатывается: истекший чанк остается истекшим при любом used_spots.
func (s *Service) RecomputeUsage(ctx context.Context, chunkID int64) (*domain.Chunk, error) {
	var result *domain.Chunk

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		chunk, err := s.chunkRepo.GetByIDForUpdate(txCtx, chunkID)
		if err != nil {
			if errors.Is(err, chunkRepo.ErrChunkNotFound) {
				return ErrChunkNotFound
			}
			return fmt.Errorf("%w: RecomputeUsage - get chunk: %w", ErrInternal, err)
		}

		used, err := s.subBookingRepo.SumActiveSpots(txCtx, chunkID)
		if err != nil {
			return fmt.Errorf("%w: RecomputeUsage - sum active spots: %w", ErrInternal, err)
		}

		if used > chunk.TotalSpots {
			s.logger.Error("RecomputeUsage: chunk id=%d active spots %d exceed total %d",
				chunkID, used, chunk.TotalSpots)
			return fmt.Errorf("%w: used=%d total=%d", ErrUsageConflict, used, chunk.TotalSpots)
		}

		status := chunk.DeriveStatus(used, s.timeProvider.Now())

		if err := s.chunkRepo.UpdateUsage(txCtx, chunkID, used, status); err != nil {
			if errors.Is(err, chunkRepo.ErrCapacityExceeded) {
				return fmt.Errorf("%w: used=%d total=%d", ErrUsageConflict, used, chunk.TotalSpots)
			}
			return fmt.Errorf("%w: RecomputeUsage - update usage: %w", ErrInternal, err)
		}

		if chunk.UsedSpots != used || chunk.Status != status {
			s.logger.Info("RecomputeUsage: chunk id=%d used %d -> %d, status %s -> %s",
				chunkID, chunk.UsedSpots, used, chunk.Status, status)
		}

		chunk.UsedSpots = used
		chunk.Status = status
		result = chunk
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
