// Package memstore хранилище в памяти для тестов сервисов и use case.
// Повторяет контракты репозиториев chunk и subbooking, включая их sentinel-ошибки,
// и предоставляет менеджер транзакций с откатом состояния при ошибке.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	chunkRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/chunk"
	subBookingRepo "github.com/m04kA/SMC-ParkingAllocationService/internal/infra/storage/subbooking"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/txmanager"
)

type txKey struct{}

// Store общее состояние чанков и суб-бронирований
type Store struct {
	mu          sync.Mutex // защищает данные
	txMu        sync.Mutex // сериализует транзакции
	chunks      map[int64]domain.Chunk
	subBookings map[int64]domain.SubBooking
	nextChunk   int64
	nextSub     int64

	// FailSum заставляет SumActiveSpots вернуть ошибку
	FailSum error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		chunks:      map[int64]domain.Chunk{},
		subBookings: map[int64]domain.SubBooking{},
	}
}

// Chunks репозиторий чанков поверх Store
func (s *Store) Chunks() *Chunks { return &Chunks{s: s} }

// SubBookings репозиторий суб-бронирований поверх Store
func (s *Store) SubBookings() *SubBookings { return &SubBookings{s: s} }

// TxManager менеджер транзакций поверх Store
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// PutChunk добавляет чанк как есть (для подготовки данных в тестах)
func (s *Store) PutChunk(c domain.Chunk) *domain.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.nextChunk++
		c.ID = s.nextChunk
	} else if c.ID > s.nextChunk {
		s.nextChunk = c.ID
	}
	s.chunks[c.ID] = c
	return &c
}

// Chunk возвращает копию чанка
func (s *Store) Chunk(id int64) (domain.Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chunks[id]
	return c, ok
}

// SubBooking возвращает копию суб-бронирования
func (s *Store) SubBooking(id int64) (domain.SubBooking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sb, ok := s.subBookings[id]
	return sb, ok
}

// ActiveSpots сумма assigned_spots активных суб-бронирований чанка
func (s *Store) ActiveSpots(chunkID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSpotsLocked(chunkID)
}

func (s *Store) activeSpotsLocked(chunkID int64) int {
	sum := 0
	for _, sb := range s.subBookings {
		if sb.ChunkID() == chunkID && sb.Status == domain.SubBookingStatusActive {
			sum += sb.AssignedSpots
		}
	}
	return sum
}

type snapshot struct {
	chunks      map[int64]domain.Chunk
	subBookings map[int64]domain.SubBooking
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		chunks:      make(map[int64]domain.Chunk, len(s.chunks)),
		subBookings: make(map[int64]domain.SubBooking, len(s.subBookings)),
	}
	for k, v := range s.chunks {
		snap.chunks[k] = v
	}
	for k, v := range s.subBookings {
		snap.subBookings[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = snap.chunks
	s.subBookings = snap.subBookings
}

// TxManager выполняет функции по одной, откатывая изменения при ошибке.
// Ошибки сериализации из драйвера переводятся в txmanager.ErrSerialization, как в txmanager
type TxManager struct {
	s *Store
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		if txmanager.IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", txmanager.ErrSerialization, err)
		}
		return err
	}
	return nil
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Chunks реализация репозитория чанков в памяти
type Chunks struct {
	s *Store
}

func (r *Chunks) Create(_ context.Context, chunk *domain.Chunk) (*domain.Chunk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextChunk++
	chunk.ID = r.s.nextChunk
	chunk.CreatedAt = time.Now()
	chunk.UpdatedAt = chunk.CreatedAt
	r.s.chunks[chunk.ID] = *chunk
	return chunk, nil
}

func (r *Chunks) GetByID(_ context.Context, id int64) (*domain.Chunk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chunks[id]
	if !ok {
		return nil, chunkRepo.ErrChunkNotFound
	}
	return &c, nil
}

func (r *Chunks) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Chunk, error) {
	return r.GetByID(ctx, id)
}

func (r *Chunks) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Chunk, error) {
	return r.filter(func(c domain.Chunk) bool { return c.OwnerID == ownerID }), nil
}

func (r *Chunks) ListAvailable(_ context.Context, ownerID int64, today time.Time) ([]*domain.Chunk, error) {
	return r.filter(func(c domain.Chunk) bool {
		return c.OwnerID == ownerID && c.IsAvailableForAllocation(today)
	}), nil
}

func (r *Chunks) ListOverdueIDs(_ context.Context, today time.Time) ([]int64, error) {
	found := r.filter(func(c domain.Chunk) bool {
		return !c.IsExpired() && c.IsOverdue(today)
	})
	ids := make([]int64, 0, len(found))
	for _, c := range found {
		ids = append(ids, c.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *Chunks) AdjustUsedSpots(_ context.Context, id int64, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chunks[id]
	if !ok {
		return chunkRepo.ErrCapacityExceeded
	}
	next := c.UsedSpots + delta
	if next < 0 || next > c.TotalSpots {
		return chunkRepo.ErrCapacityExceeded
	}
	c.UsedSpots = next
	r.s.chunks[id] = c
	return nil
}

func (r *Chunks) UpdateUsage(_ context.Context, id int64, usedSpots int, status domain.ChunkStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chunks[id]
	if !ok || usedSpots > c.TotalSpots {
		return chunkRepo.ErrCapacityExceeded
	}
	c.UsedSpots = usedSpots
	c.Status = status
	r.s.chunks[id] = c
	return nil
}

func (r *Chunks) filter(keep func(domain.Chunk) bool) []*domain.Chunk {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.Chunk, 0)
	for _, c := range r.s.chunks {
		if keep(c) {
			c := c
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SubBookings реализация репозитория суб-бронирований в памяти
type SubBookings struct {
	s *Store
}

func (r *SubBookings) Create(_ context.Context, sb *domain.SubBooking) (*domain.SubBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextSub++
	sb.ID = r.s.nextSub
	sb.Chunk = domain.Unresolved(sb.ChunkID())
	sb.CreatedAt = time.Now()
	sb.UpdatedAt = sb.CreatedAt
	r.s.subBookings[sb.ID] = *sb
	return sb, nil
}

func (r *SubBookings) GetByID(_ context.Context, id int64) (*domain.SubBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sb, ok := r.s.subBookings[id]
	if !ok {
		return nil, subBookingRepo.ErrSubBookingNotFound
	}
	return &sb, nil
}

func (r *SubBookings) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SubBooking, error) {
	return r.GetByID(ctx, id)
}

func (r *SubBookings) ListByChunk(_ context.Context, chunkID int64) ([]*domain.SubBooking, error) {
	return r.filter(func(sb domain.SubBooking) bool { return sb.ChunkID() == chunkID }), nil
}

func (r *SubBookings) ListOverdue(_ context.Context, today time.Time) ([]*domain.SubBooking, error) {
	return r.filter(func(sb domain.SubBooking) bool {
		return !sb.IsExpired() && sb.IsOverdue(today)
	}), nil
}

func (r *SubBookings) SumActiveSpots(_ context.Context, chunkID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailSum != nil {
		return 0, r.s.FailSum
	}
	return r.s.activeSpotsLocked(chunkID), nil
}

func (r *SubBookings) Update(_ context.Context, sb *domain.SubBooking) (*domain.SubBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.subBookings[sb.ID]
	if !ok {
		return nil, subBookingRepo.ErrSubBookingNotFound
	}
	current.AssignedSpots = sb.AssignedSpots
	current.ValidFrom = sb.ValidFrom
	current.ValidTo = sb.ValidTo
	current.Notes = sb.Notes
	current.UpdatedAt = time.Now()
	r.s.subBookings[sb.ID] = current
	return &current, nil
}

func (r *SubBookings) UpdateStatus(_ context.Context, id int64, status domain.SubBookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sb, ok := r.s.subBookings[id]
	if !ok {
		return subBookingRepo.ErrSubBookingNotFound
	}
	sb.Status = status
	r.s.subBookings[id] = sb
	return nil
}

func (r *SubBookings) AddUsage(_ context.Context, id int64, hours float64, at time.Time) (*domain.SubBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sb, ok := r.s.subBookings[id]
	if !ok || sb.IsExpired() {
		return nil, subBookingRepo.ErrSubBookingNotFound
	}
	sb.UsageHours += hours
	at = at.UTC()
	sb.LastAccessDate = &at
	r.s.subBookings[id] = sb
	return &sb, nil
}

func (r *SubBookings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subBookings[id]; !ok {
		return subBookingRepo.ErrSubBookingNotFound
	}
	delete(r.s.subBookings, id)
	return nil
}

func (r *SubBookings) filter(keep func(domain.SubBooking) bool) []*domain.SubBooking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]*domain.SubBooking, 0)
	for _, sb := range r.s.subBookings {
		if keep(sb) {
			sb := sb
			result = append(result, &sb)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// FixedClock провайдер времени с фиксированным значением
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// NopLogger логгер, отбрасывающий сообщения
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
