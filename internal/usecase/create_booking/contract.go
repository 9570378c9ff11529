package create_booking

import (
	"context"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error)
	GetBySlot(ctx context.Context, date time.Time, startTime types.TimeString, serviceID int64) (*domain.Lesson, error)
	IncrementBookedSpots(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

// PaymentRepository интерфейс репозитория платежей (для долгового гейта)
type PaymentRepository interface {
	GetUnpaidByClientEmail(ctx context.Context, clientEmail string) ([]*domain.Payment, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TxManager интерфейс менеджера транзакций
//
// Вся мутация занятости слота выполняется в одной сериализуемой транзакции:
// конкурентные бронирования одного слота не могут оба пройти проверку потолка
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer интерфейс отправки писем клиенту
type Mailer interface {
	SendBookingConfirmation(data mailer.BookingEmailData) error
	SendBookingApproved(data mailer.BookingEmailData) error
}

// CodeGenerator интерфейс генератора публичных кодов бронирования
type CodeGenerator interface {
	NewCode() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
