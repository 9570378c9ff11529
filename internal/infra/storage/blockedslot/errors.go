package blockedslot

import "errors"

var (
	// ErrBlockedSlotNotFound возвращается, когда блокировка не найдена
	ErrBlockedSlotNotFound = errors.New("blockedslot.repository: blocked slot not found")

	// ErrAlreadyBlocked возвращается при попытке повторно заблокировать тот же слот
	ErrAlreadyBlocked = errors.New("blockedslot.repository: slot is already blocked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockedslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockedslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockedslot.repository: failed to scan row")
)
