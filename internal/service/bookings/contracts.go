package bookings

import (
	"context"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetByClientWithFilter(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	MarkAttendance(ctx context.Context, id int64, attendance domain.AttendanceStatus, compensable *bool) error
}

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	GetBySlot(ctx context.Context, date time.Time, startTime types.TimeString, serviceID int64) (*domain.Lesson, error)
	DecrementBookedSpots(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer интерфейс отправки писем клиенту
type Mailer interface {
	SendBookingApproved(data mailer.BookingEmailData) error
	SendBookingRejected(data mailer.BookingEmailData) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
