package create_booking

import "errors"

// Закрытый набор ошибок use case - каждый отказ Execute заворачивает
// одну из этих ошибок, хендлер различает их через errors.Is
var (
	ErrInvalidInput       = errors.New("create_booking: invalid input")
	ErrServiceNotFound    = errors.New("create_booking: service not found")
	ErrServiceInactive    = errors.New("create_booking: service is inactive")
	ErrCatalogUnavailable = errors.New("create_booking: catalog service unavailable")
	ErrClientBlocked      = errors.New("create_booking: client is blocked due to debt")
	ErrInvalidDate        = errors.New("create_booking: invalid date")
	ErrSlotNotInGrid      = errors.New("create_booking: slot is not in the schedule grid")
	ErrSlotBlocked        = errors.New("create_booking: slot is blocked")
	ErrCapacityExceeded   = errors.New("create_booking: slot capacity exceeded")
	ErrInternal           = errors.New("create_booking: internal error")
)
