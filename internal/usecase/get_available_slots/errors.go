package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена в каталоге
	ErrServiceInactive = errors.New("get_available_slots: service is not active")

	// ErrCatalogUnavailable возвращается, когда каталог услуг недоступен
	ErrCatalogUnavailable = errors.New("get_available_slots: catalog service unavailable")

	// ErrClientBlocked возвращается, когда клиент заблокирован по долгу
	// Заблокированный клиент не должен видеть доступные слоты
	ErrClientBlocked = errors.New("get_available_slots: client is blocked by outstanding debt")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
