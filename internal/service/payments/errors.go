package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAlreadyPaid возвращается при попытке оплатить оплаченный платеж
	ErrAlreadyPaid = errors.New("payment is already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
