package create_payment

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/service/payments/models"
)

type PaymentsService interface {
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
