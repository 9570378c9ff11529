package payments

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByClientEmail(ctx context.Context, clientEmail string) ([]*domain.Payment, error)
	GetUnpaidByClientEmail(ctx context.Context, clientEmail string) ([]*domain.Payment, error)
	GetUnpaid(ctx context.Context) ([]*domain.Payment, error)
	UpdatePenalty(ctx context.Context, id int64, penalty, total float64, status domain.PaymentStatus) error
	MarkPaid(ctx context.Context, id int64) error
}

// Mailer интерфейс отправки напоминаний об оплате
type Mailer interface {
	SendPaymentReminder(data mailer.PaymentReminderData) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
