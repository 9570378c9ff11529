package lesson

import "errors"

var (
	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = errors.New("lesson.repository: lesson not found")

	// ErrCapacityExceeded возвращается, когда инкремент занятости упёрся в потолок
	ErrCapacityExceeded = errors.New("lesson.repository: slot capacity exceeded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lesson.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lesson.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lesson.repository: failed to scan row")
)
