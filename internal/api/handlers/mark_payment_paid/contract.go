package mark_payment_paid

import "context"

type PaymentsService interface {
	MarkPaid(ctx context.Context, paymentID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
