package schedule

import "errors"

var (
	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("blocked slot not found")

	// ErrAlreadyBlocked возвращается при повторной блокировке того же слота
	ErrAlreadyBlocked = errors.New("slot is already blocked")

	// ErrSlotNotInGrid возвращается, когда время не попадает в сетку расписания
	ErrSlotNotInGrid = errors.New("slot is not in the schedule grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
