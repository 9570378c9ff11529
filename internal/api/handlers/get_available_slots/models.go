package get_available_slots

import (
	"github.com/equiclub/EQC-BookingService/internal/domain"
	getAvailableSlots "github.com/equiclub/EQC-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "09:30"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	Date      string         `json:"date"` // "2026-03-14"
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		})
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
