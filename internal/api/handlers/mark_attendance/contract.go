package mark_attendance

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	MarkAttendance(ctx context.Context, bookingID int64, req *models.MarkAttendanceRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
