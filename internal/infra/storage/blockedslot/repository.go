package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/pkg/dbtx"
	"github.com/equiclub/EQC-BookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL unique_violation
const pqUniqueViolation = "23505"

var blockedSlotColumns = []string{
	"id",
	"block_date",
	"time_slot",
	"reason",
	"created_at",
}

// Repository репозиторий блокировок доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку дня (time_slot = NULL) или конкретного слота
func (r *Repository) Create(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns(
			"block_date",
			"time_slot",
			"reason",
		).
		Values(
			block.Date,
			block.TimeSlot,
			block.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrAlreadyBlocked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByDate получает все блокировки на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedSlotColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("time_slot ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedSlots(rows)
}

// Delete удаляет блокировку (разблокирует день или слот)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}

func (r *Repository) scanBlockedSlots(rows *sql.Rows) ([]*domain.BlockedSlot, error) {
	blocks := make([]*domain.BlockedSlot, 0)

	for rows.Next() {
		var block domain.BlockedSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.Date,
			&block.TimeSlot,
			&block.Reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockedSlots - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedSlots - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
