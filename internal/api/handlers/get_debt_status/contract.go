package get_debt_status

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/service/payments/models"
)

type PaymentsService interface {
	GetDebtStatus(ctx context.Context, clientEmail string) (*models.DebtStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
