package get_available_slots

import (
	"time"

	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	ClientEmail string    // Email клиента (для долгового гейта)
	ServiceID   int64     // ID услуги из каталога
	Date        time.Time // Дата (без времени)
}

// Slot доступный слот с количеством свободных мест
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int
	TotalSpots      int
}

// Response модель ответа со слотами в порядке сетки
type Response struct {
	Date      time.Time
	ServiceID int64
	Slots     []Slot
}
