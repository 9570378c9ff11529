package get_available_slots

import (
	"context"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error)
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
