package subbooking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/psqlbuilder"
)

const table = "sub_bookings"

var columns = []string{
	"id",
	"bulk_booking_id",
	"owner_id",
	"customer_id",
	"assigned_spots",
	"valid_from",
	"valid_to",
	"status",
	"usage_hours",
	"last_access_date",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с суб-бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория суб-бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое суб-бронирование
// Должен вызываться внутри той же транзакции, что и изменение счетчиков чанка
func (r *Repository) Create(ctx context.Context, sb *domain.SubBooking) (*domain.SubBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"bulk_booking_id",
			"owner_id",
			"customer_id",
			"assigned_spots",
			"valid_from",
			"valid_to",
			"status",
			"usage_hours",
			"notes",
		).
		Values(
			sb.ChunkID(),
			sb.OwnerID,
			sb.CustomerID,
			sb.AssignedSpots,
			sb.ValidFrom,
			sb.ValidTo,
			sb.Status,
			sb.UsageHours,
			sb.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sb.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	sb.CreatedAt = createdAt.Time
	sb.UpdatedAt = updatedAt.Time

	return sb, nil
}

// GetByID получает суб-бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SubBooking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает суб-бронирование и блокирует строку (только внутри транзакции)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.SubBooking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.SubBooking, error) {
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

	sb, err := scanSubBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan sub-booking: %w", ErrScanRow, err)
	}

	return sb, nil
}

// ListByChunk получает все суб-бронирования чанка
func (r *Repository) ListByChunk(ctx context.Context, chunkID int64) ([]*domain.SubBooking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"bulk_booking_id": chunkID}).
		OrderBy("valid_from ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByChunk - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByChunk", query, args)
}

// ListOverdue получает суб-бронирования в статусе active/suspended, у которых valid_to < today
func (r *Repository) ListOverdue(ctx context.Context, today time.Time) ([]*domain.SubBooking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": []string{
			string(domain.SubBookingStatusActive),
			string(domain.SubBookingStatusSuspended),
		}}).
		Where(squirrel.Lt{"valid_to": domain.DateOnly(today)}).
		OrderBy("bulk_booking_id ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdue - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListOverdue", query, args)
}

// SumActiveSpots возвращает сумму assigned_spots по активным суб-бронированиям чанка
func (r *Repository) SumActiveSpots(ctx context.Context, chunkID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sumActiveSpotsQuery(chunkID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumActiveSpots - build select query: %w", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumActiveSpots - scan sum: %w", ErrScanRow, err)
	}

	return total, nil
}

func sumActiveSpotsQuery(chunkID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("COALESCE(SUM(assigned_spots), 0)").
		From(table).
		Where(squirrel.Eq{"bulk_booking_id": chunkID}).
		Where(squirrel.Eq{"status": domain.SubBookingStatusActive})
}

// Update обновляет количество мест, окно дат и заметки
func (r *Repository) Update(ctx context.Context, sb *domain.SubBooking) (*domain.SubBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("assigned_spots", sb.AssignedSpots).
		Set("valid_from", sb.ValidFrom).
		Set("valid_to", sb.ValidTo).
		Set("notes", sb.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sb.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	sb.UpdatedAt = updatedAt.Time
	return sb, nil
}

// UpdateStatus обновляет статус суб-бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SubBookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// AddUsage добавляет часы использования и обновляет дату последнего доступа
// Счетчики емкости чанка не затрагиваются
func (r *Repository) AddUsage(ctx context.Context, id int64, hours float64, at time.Time) (*domain.SubBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := addUsageQuery(id, hours, at).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddUsage - build update query: %w", ErrBuildQuery, err)
	}

	sb, err := scanSubBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AddUsage - execute update: %w", ErrExecQuery, err)
	}

	return sb, nil
}

func addUsageQuery(id int64, hours float64, at time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("usage_hours", squirrel.Expr("usage_hours + ?", hours)).
		Set("last_access_date", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.SubBookingStatusExpired}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

// Delete удаляет суб-бронирование (места возвращаются в чанк вызывающей стороной)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSubBookingNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.SubBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.SubBooking, 0)
	for rows.Next() {
		sb, err := scanSubBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, sb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubBooking(row scanner) (*domain.SubBooking, error) {
	var sb domain.SubBooking
	var chunkID int64
	var lastAccess, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sb.ID,
		&chunkID,
		&sb.OwnerID,
		&sb.CustomerID,
		&sb.AssignedSpots,
		&sb.ValidFrom,
		&sb.ValidTo,
		&sb.Status,
		&sb.UsageHours,
		&lastAccess,
		&sb.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sb.Chunk = domain.Unresolved(chunkID)
	if lastAccess.Valid {
		t := lastAccess.Time
		sb.LastAccessDate = &t
	}
	sb.CreatedAt = createdAt.Time
	sb.UpdatedAt = updatedAt.Time

	return &sb, nil
}
