package lesson

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/pkg/dbtx"
	"github.com/equiclub/EQC-BookingService/pkg/psqlbuilder"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

var lessonColumns = []string{
	"id",
	"service_id",
	"lesson_date",
	"start_time",
	"end_time",
	"max_spots",
	"booked_spots",
	"instructor_id",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий занятий (записей занятости слотов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись занятости слота
// Вызывается лениво - при первом бронировании слота, либо администратором
// при создании занятия без записанных клиентов (booked_spots = 0)
func (r *Repository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lessons").
		Columns(
			"service_id",
			"lesson_date",
			"start_time",
			"end_time",
			"max_spots",
			"booked_spots",
			"instructor_id",
			"status",
		).
		Values(
			lesson.ServiceID,
			lesson.Date,
			lesson.StartTime,
			lesson.EndTime,
			lesson.MaxSpots,
			lesson.BookedSpots,
			lesson.InstructorID,
			lesson.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lesson.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time

	return lesson, nil
}

// GetByID получает занятие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanLesson(executor.QueryRowContext(ctx, query, args...))
}

// GetByDate получает все занятия на дату, отсортированные по времени начала
// Внутри транзакции читает с блокировкой FOR UPDATE - выборка используется
// для проверки вместимости перед записью
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"lesson_date": date}).
		OrderBy("start_time ASC, service_id ASC")

	if dbtx.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// GetBySlot получает занятие конкретной услуги в конкретном слоте
func (r *Repository) GetBySlot(ctx context.Context, date time.Time, startTime types.TimeString, serviceID int64) (*domain.Lesson, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{
			"lesson_date": date,
			"start_time":  startTime,
			"service_id":  serviceID,
		})

	if dbtx.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanLesson(executor.QueryRowContext(ctx, query, args...))
}

// IncrementBookedSpots атомарно увеличивает занятость на единицу
// Условие booked_spots < max_spots в самом UPDATE гарантирует, что потолок
// вместимости не будет превышен даже при конкурентных бронированиях
func (r *Repository) IncrementBookedSpots(ctx context.Context, id int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lessons").
		Set("booked_spots", squirrel.Expr("booked_spots + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("booked_spots < max_spots")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementBookedSpots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBookedSpots - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBookedSpots - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

// DecrementBookedSpots уменьшает занятость на единицу (не ниже нуля)
// Используется при отмене и отклонении бронирований
func (r *Repository) DecrementBookedSpots(ctx context.Context, id int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lessons").
		Set("booked_spots", squirrel.Expr("booked_spots - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("booked_spots > 0")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementBookedSpots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementBookedSpots - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementBookedSpots - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

// UpdateStatus обновляет статус занятия
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.LessonStatus) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lessons").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

func (r *Repository) scanLesson(row *sql.Row) (*domain.Lesson, error) {
	var lesson domain.Lesson
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&lesson.ID,
		&lesson.ServiceID,
		&lesson.Date,
		&lesson.StartTime,
		&lesson.EndTime,
		&lesson.MaxSpots,
		&lesson.BookedSpots,
		&lesson.InstructorID,
		&lesson.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanLesson - scan lesson: %v", ErrScanRow, err)
	}

	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time

	return &lesson, nil
}

func (r *Repository) scanLessons(rows *sql.Rows) ([]*domain.Lesson, error) {
	lessons := make([]*domain.Lesson, 0)

	for rows.Next() {
		var lesson domain.Lesson
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&lesson.ID,
			&lesson.ServiceID,
			&lesson.Date,
			&lesson.StartTime,
			&lesson.EndTime,
			&lesson.MaxSpots,
			&lesson.BookedSpots,
			&lesson.InstructorID,
			&lesson.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanLessons - scan row: %v", ErrScanRow, err)
		}

		lesson.CreatedAt = createdAt.Time
		lesson.UpdatedAt = updatedAt.Time

		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLessons - rows error: %v", ErrScanRow, err)
	}

	return lessons, nil
}
