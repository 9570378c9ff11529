package domain

// Длительности занятий
const (
	// SlotDurationMinutes длительность одного слота расписания
	SlotDurationMinutes = 30

	// MaxLessonDurationMinutes максимальная длительность занятия (два слота подряд)
	MaxLessonDurationMinutes = 60
)

// Дефолтные значения политики бронирования
// Используются, если секция booking_policy в конфиге не заполнена
const (
	DefaultMaxSpotsPerSlot    = 6
	DefaultDebtBlockThreshold = 30.0

	// Штрафная лестница за просрочку месячного платежа:
	// до PenaltyGraceDay включительно - без штрафа,
	// далее до PenaltyTier1LastDay включительно - Tier1,
	// далее до конца месяца - Tier2,
	// после конца месяца - блокировка (потеря слота)
	DefaultPenaltyGraceDay     = 8
	DefaultPenaltyTier1Amount  = 5.0
	DefaultPenaltyTier1LastDay = 15
	DefaultPenaltyTier2Amount  = 15.0
)

// Ограничения валидации
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 500
)

// Форматы даты и времени
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveBookingStatuses статусы, не занимающие место в слоте
// Используются при фильтрации активных бронирований
var InactiveBookingStatuses = []BookingStatus{
	BookingStatusRejected,
	BookingStatusCancelled,
}

// ActiveBookingStatuses статусы, занимающие место в слоте
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
}
