package catalogservice

// Service модель услуги из каталога платформы
// Каталог (название, цены, флаги) ведется админкой платформы,
// сервис бронирования только читает его
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"` // 30 или 60
	Price           *float64 `json:"price"`
	AutoApprove     bool     `json:"auto_approve"`
	WeeklyFrequency int      `json:"weekly_frequency"` // 1 = разовая запись, >1 = недельный план
	Active          bool     `json:"active"`
}

// TakesChainedSlot возвращает true, если услуга занимает два слота подряд
func (s *Service) TakesChainedSlot() bool {
	return s.DurationMinutes > 30
}

// IsWeeklyPlan возвращает true, если услуга бронируется недельным планом
func (s *Service) IsWeeklyPlan() bool {
	return s.WeeklyFrequency > 1
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
