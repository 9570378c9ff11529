package get_client_payments

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/service/payments/models"
)

type PaymentsService interface {
	GetClientPayments(ctx context.Context, clientEmail string) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
