package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/pkg/dbtx"
	"github.com/equiclub/EQC-BookingService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"client_email",
	"month",
	"amount",
	"penalty",
	"total",
	"status",
	"due_date",
	"paid_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий месячных платежей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж (месячное начисление)
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"client_email",
			"month",
			"amount",
			"penalty",
			"total",
			"status",
			"due_date",
		).
		Values(
			payment.ClientEmail,
			payment.Month,
			payment.Amount,
			payment.Penalty,
			payment.Total,
			payment.Status,
			payment.DueDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var payment domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.ClientEmail,
		&payment.Month,
		&payment.Amount,
		&payment.Penalty,
		&payment.Total,
		&payment.Status,
		&payment.DueDate,
		&payment.PaidAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}

// GetByClientEmail получает все платежи клиента, новые месяцы первыми
func (r *Repository) GetByClientEmail(ctx context.Context, clientEmail string) ([]*domain.Payment, error) {
	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"client_email": clientEmail}).
		OrderBy("month DESC")

	return r.queryPayments(ctx, selectBuilder, "GetByClientEmail")
}

// GetUnpaidByClientEmail получает неоплаченные платежи клиента
// Выборка используется долговым гейтом перед каждым бронированием
func (r *Repository) GetUnpaidByClientEmail(ctx context.Context, clientEmail string) ([]*domain.Payment, error) {
	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"client_email": clientEmail}).
		Where(squirrel.NotEq{"status": domain.PaymentStatusPaid}).
		OrderBy("month ASC")

	return r.queryPayments(ctx, selectBuilder, "GetUnpaidByClientEmail")
}

// GetUnpaid получает все неоплаченные платежи всех клиентов
// Используется ночной задачей начисления штрафов
func (r *Repository) GetUnpaid(ctx context.Context) ([]*domain.Payment, error) {
	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.NotEq{"status": domain.PaymentStatusPaid}).
		OrderBy("client_email ASC, month ASC")

	return r.queryPayments(ctx, selectBuilder, "GetUnpaid")
}

// UpdatePenalty обновляет штраф, итог и статус платежа
func (r *Repository) UpdatePenalty(ctx context.Context, id int64, penalty, total float64, status domain.PaymentStatus) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("penalty", penalty).
		Set("total", total).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePenalty - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdatePenalty")
}

// MarkPaid помечает платеж оплаченным
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusPaid).
		Set("paid_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.PaymentStatusPaid}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkPaid")
}

func (r *Repository) queryPayments(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Payment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanPayments(rows)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		var payment domain.Payment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&payment.ID,
			&payment.ClientEmail,
			&payment.Month,
			&payment.Amount,
			&payment.Penalty,
			&payment.Total,
			&payment.Status,
			&payment.DueDate,
			&payment.PaidAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}

		payment.CreatedAt = createdAt.Time
		payment.UpdatedAt = updatedAt.Time

		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
