package create_booking

import (
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	createBooking "github.com/equiclub/EQC-BookingService/internal/usecase/create_booking"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// SlotSelectionRequest выбранный слот в HTTP запросе
type SlotSelectionRequest struct {
	Date      string `json:"date"`      // "2026-03-14"
	StartTime string `json:"startTime"` // "09:30"
}

// CreateBookingRequest HTTP request model
// Для недельных планов slots содержит по одному слоту на занятие недели
type CreateBookingRequest struct {
	ClientName     string                 `json:"clientName"`
	ServiceID      int64                  `json:"serviceId"`
	Slots          []SlotSelectionRequest `json:"slots"`
	Notes          *string                `json:"notes,omitempty"`
	IsFixedStudent bool                   `json:"isFixedStudent,omitempty"`
}

// CreatedBookingResponse созданное бронирование в HTTP ответе
type CreatedBookingResponse struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	LessonID        int64  `json:"lessonId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	DurationMinutes int    `json:"durationMinutes"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Bookings []CreatedBookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientEmail string) (*createBooking.Request, error) {
	slots := make([]createBooking.SlotSelection, 0, len(r.Slots))
	for _, sel := range r.Slots {
		date, err := time.Parse(domain.DateFormat, sel.Date)
		if err != nil {
			return nil, err
		}

		startTime, err := types.NewTimeStringFromString(sel.StartTime)
		if err != nil {
			return nil, err
		}

		slots = append(slots, createBooking.SlotSelection{
			Date:      date,
			StartTime: startTime,
		})
	}

	return &createBooking.Request{
		ClientEmail:    clientEmail,
		ClientName:     r.ClientName,
		ServiceID:      r.ServiceID,
		Slots:          slots,
		Notes:          r.Notes,
		IsFixedStudent: r.IsFixedStudent,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]CreatedBookingResponse, 0, len(resp.Bookings))
	for _, booking := range resp.Bookings {
		bookings = append(bookings, CreatedBookingResponse{
			ID:              booking.ID,
			Code:            booking.Code,
			LessonID:        booking.LessonID,
			Date:            booking.Date.Format(domain.DateFormat),
			StartTime:       booking.StartTime.String(),
			Status:          string(booking.Status),
			ServiceName:     booking.ServiceName,
			DurationMinutes: booking.DurationMinutes,
		})
	}

	return &CreateBookingResponse{Bookings: bookings}
}
