package create_booking

import (
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// SlotSelection выбранный клиентом слот
type SlotSelection struct {
	Date      time.Time
	StartTime types.TimeString
}

// Request модель запроса на создание бронирования
//
// Для разовых услуг Slots содержит ровно один элемент, для недельных
// планов - ровно WeeklyFrequency элементов (по одному на занятие недели)
type Request struct {
	ClientEmail    string
	ClientName     string
	ServiceID      int64
	Slots          []SlotSelection
	Notes          *string
	IsFixedStudent bool
}

// CreatedBooking созданное бронирование в ответе
type CreatedBooking struct {
	ID              int64
	Code            string
	LessonID        int64
	Date            time.Time
	StartTime       types.TimeString
	Status          domain.BookingStatus
	ServiceName     string
	DurationMinutes int
}

// Response модель ответа
type Response struct {
	Bookings []CreatedBooking
}
