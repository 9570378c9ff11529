package schedule

import (
	"context"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LessonStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByLessonID(ctx context.Context, lessonID int64) ([]*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	Create(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
