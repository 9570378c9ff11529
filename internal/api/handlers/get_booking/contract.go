package get_booking

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, id int64, clientEmail string) (*models.BookingResponse, error)
	GetByCode(ctx context.Context, code string, clientEmail string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
