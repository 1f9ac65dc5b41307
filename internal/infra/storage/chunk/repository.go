package chunk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/psqlbuilder"
)

const table = "chunks"

var columns = []string{
	"id",
	"owner_id",
	"parking_name",
	"chunk_name",
	"company",
	"vehicle_type",
	"total_spots",
	"used_spots",
	"valid_from",
	"valid_to",
	"status",
	"remarks",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с чанками (пулами купленной емкости)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория чанков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый чанк с used_spots = 0
func (r *Repository) Create(ctx context.Context, chunk *domain.Chunk) (*domain.Chunk, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"owner_id",
			"parking_name",
			"chunk_name",
			"company",
			"vehicle_type",
			"total_spots",
			"used_spots",
			"valid_from",
			"valid_to",
			"status",
			"remarks",
		).
		Values(
			chunk.OwnerID,
			chunk.ParkingName,
			chunk.ChunkName,
			chunk.Company,
			chunk.VehicleType,
			chunk.TotalSpots,
			chunk.UsedSpots,
			chunk.ValidFrom,
			chunk.ValidTo,
			chunk.Status,
			chunk.Remarks,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&chunk.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	chunk.CreatedAt = createdAt.Time
	chunk.UpdatedAt = updatedAt.Time

	return chunk, nil
}

// GetByID получает чанк по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Chunk, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает чанк по ID и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
//
// Все мутации счетчиков емкости сначала берут эту блокировку: так проверка
// доступных мест и запись нового значения сериализуются по chunk id.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Chunk, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Chunk, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	chunk, err := scanChunk(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChunkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan chunk: %w", ErrScanRow, err)
	}

	return chunk, nil
}

// ListByOwner получает все чанки координатора, новые первыми
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Chunk, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByOwner", query, args)
}

// ListAvailable получает чанки, из которых еще можно выделять места:
// status = active, available_spots > 0, valid_to >= today
func (r *Repository) ListAvailable(ctx context.Context, ownerID int64, today time.Time) ([]*domain.Chunk, error) {
	query, args, err := listAvailableQuery(ownerID, today).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListAvailable", query, args)
}

func listAvailableQuery(ownerID int64, today time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"status": domain.ChunkStatusActive}).
		Where("total_spots - used_spots > 0").
		Where(squirrel.GtOrEq{"valid_to": domain.DateOnly(today)}).
		OrderBy("valid_from ASC", "id ASC")
}

// ListOverdueIDs получает id не истекших чанков, у которых valid_to < today
func (r *Repository) ListOverdueIDs(ctx context.Context, today time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(table).
		Where(squirrel.NotEq{"status": domain.ChunkStatusExpired}).
		Where(squirrel.Lt{"valid_to": domain.DateOnly(today)}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdueIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdueIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListOverdueIDs - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverdueIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// AdjustUsedSpots атомарно изменяет used_spots на delta
// Обновление выполняется только если новое значение остается в [0, total_spots],
// иначе возвращается ErrCapacityExceeded и строка не меняется
func (r *Repository) AdjustUsedSpots(ctx context.Context, id int64, delta int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := adjustUsedSpotsQuery(id, delta).ToSql()
	if err != nil {
		return fmt.Errorf("%w: AdjustUsedSpots - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AdjustUsedSpots - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AdjustUsedSpots - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

func adjustUsedSpotsQuery(id int64, delta int) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("used_spots", squirrel.Expr("used_spots + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("used_spots + ? BETWEEN 0 AND total_spots", delta)
}

// UpdateUsage записывает пересчитанные used_spots и status
// Если usedSpots больше total_spots, строка не меняется и возвращается ErrCapacityExceeded
func (r *Repository) UpdateUsage(ctx context.Context, id int64, usedSpots int, status domain.ChunkStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("used_spots", usedSpots).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"total_spots": usedSpots}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateUsage - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateUsage - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.Chunk, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	chunks := make([]*domain.Chunk, 0)
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return chunks, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanChunk(row scanner) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&chunk.ID,
		&chunk.OwnerID,
		&chunk.ParkingName,
		&chunk.ChunkName,
		&chunk.Company,
		&chunk.VehicleType,
		&chunk.TotalSpots,
		&chunk.UsedSpots,
		&chunk.ValidFrom,
		&chunk.ValidTo,
		&chunk.Status,
		&chunk.Remarks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	chunk.CreatedAt = createdAt.Time
	chunk.UpdatedAt = updatedAt.Time

	return &chunk, nil
}
