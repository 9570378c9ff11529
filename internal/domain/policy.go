package domain

// BookingPolicy бизнес-константы бронирования и долговой блокировки
// Значения приходят из конфига (секция booking_policy), а не зашиваются
// в код по месту использования
type BookingPolicy struct {
	// MaxSpotsPerSlot потолок суммарной занятости слота, общий для всех услуг
	MaxSpotsPerSlot int

	// DebtBlockThreshold порог долга, выше которого (строго) клиент блокируется
	DebtBlockThreshold float64

	// Штрафная лестница: по PenaltyGraceDay включительно без штрафа,
	// по PenaltyTier1LastDay включительно - Tier1Amount,
	// до конца месяца - Tier2Amount, дальше - потеря слота
	PenaltyGraceDay     int
	PenaltyTier1Amount  float64
	PenaltyTier1LastDay int
	PenaltyTier2Amount  float64
}

// DefaultBookingPolicy возвращает политику с дефолтными значениями
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MaxSpotsPerSlot:     DefaultMaxSpotsPerSlot,
		DebtBlockThreshold:  DefaultDebtBlockThreshold,
		PenaltyGraceDay:     DefaultPenaltyGraceDay,
		PenaltyTier1Amount:  DefaultPenaltyTier1Amount,
		PenaltyTier1LastDay: DefaultPenaltyTier1LastDay,
		PenaltyTier2Amount:  DefaultPenaltyTier2Amount,
	}
}
