package models

import (
	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// Request модели

// CreateLessonRequest запрос персонала на создание занятия вручную
// Занятие создается пустым - места занимают последующие бронирования
type CreateLessonRequest struct {
	Date         string `json:"date"`      // "2026-03-14"
	StartTime    string `json:"startTime"` // "09:00"
	ServiceID    int64  `json:"serviceId"`
	MaxSpots     *int   `json:"maxSpots,omitempty"`
	InstructorID *int64 `json:"instructorId,omitempty"`
}

// BlockSlotRequest запрос на блокировку слота или целого дня
// Пустой timeSlot блокирует весь день
type BlockSlotRequest struct {
	Date     string  `json:"date"`
	TimeSlot *string `json:"timeSlot,omitempty"`
	Reason   string  `json:"reason"`
}

// Response модели

// ScheduleBookingResponse бронирование в расписании дня
type ScheduleBookingResponse struct {
	ID               int64   `json:"id"`
	Code             string  `json:"code"`
	ClientEmail      string  `json:"clientEmail"`
	ClientName       string  `json:"clientName"`
	Status           string  `json:"status"`
	IsFixedStudent   bool    `json:"isFixedStudent"`
	AttendanceStatus *string `json:"attendanceStatus,omitempty"`
}

// ScheduleLessonResponse занятие в расписании дня
type ScheduleLessonResponse struct {
	ID           int64                      `json:"id"`
	ServiceID    int64                      `json:"serviceId"`
	BookedSpots  int                        `json:"bookedSpots"`
	MaxSpots     int                        `json:"maxSpots"`
	InstructorID *int64                     `json:"instructorId,omitempty"`
	Status       string                     `json:"status"`
	Bookings     []*ScheduleBookingResponse `json:"bookings"`
}

// ScheduleSlotResponse слот сетки в расписании дня
type ScheduleSlotResponse struct {
	StartTime   string                    `json:"startTime"`
	Blocked     bool                      `json:"blocked"`
	BlockReason *string                   `json:"blockReason,omitempty"`
	Occupied    int                       `json:"occupied"`
	Capacity    int                       `json:"capacity"`
	Lessons     []*ScheduleLessonResponse `json:"lessons"`
}

// DayScheduleResponse расписание дня для персонала
type DayScheduleResponse struct {
	Date       string                  `json:"date"`
	WorkingDay bool                    `json:"workingDay"`
	DayBlocked bool                    `json:"dayBlocked"`
	DayReason  *string                 `json:"dayReason,omitempty"`
	Slots      []*ScheduleSlotResponse `json:"slots"`
}

// BlockedSlotResponse созданная блокировка
type BlockedSlotResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	TimeSlot *string `json:"timeSlot,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// LessonResponse созданное занятие
type LessonResponse struct {
	ID           int64  `json:"id"`
	ServiceID    int64  `json:"serviceId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	MaxSpots     int    `json:"maxSpots"`
	BookedSpots  int    `json:"bookedSpots"`
	InstructorID *int64 `json:"instructorId,omitempty"`
	Status       string `json:"status"`
}

// FromDomainLesson конвертирует domain.Lesson в response
func FromDomainLesson(lesson *domain.Lesson) *LessonResponse {
	return &LessonResponse{
		ID:           lesson.ID,
		ServiceID:    lesson.ServiceID,
		Date:         lesson.Date.Format(domain.DateFormat),
		StartTime:    lesson.StartTime.String(),
		EndTime:      lesson.EndTime.String(),
		MaxSpots:     lesson.MaxSpots,
		BookedSpots:  lesson.BookedSpots,
		InstructorID: lesson.InstructorID,
		Status:       string(lesson.Status),
	}
}

// FromDomainBlockedSlot конвертирует domain.BlockedSlot в response
func FromDomainBlockedSlot(block *domain.BlockedSlot) *BlockedSlotResponse {
	resp := &BlockedSlotResponse{
		ID:     block.ID,
		Date:   block.Date.Format(domain.DateFormat),
		Reason: block.Reason,
	}

	if block.TimeSlot != nil {
		slot := block.TimeSlot.String()
		resp.TimeSlot = &slot
	}

	return resp
}

// FromDomainScheduleBooking конвертирует domain.Booking в response расписания
func FromDomainScheduleBooking(booking *domain.Booking) *ScheduleBookingResponse {
	resp := &ScheduleBookingResponse{
		ID:             booking.ID,
		Code:           booking.Code,
		ClientEmail:    booking.ClientEmail,
		ClientName:     booking.ClientName,
		Status:         string(booking.Status),
		IsFixedStudent: booking.IsFixedStudent,
	}

	if booking.AttendanceStatus != nil {
		attendance := string(*booking.AttendanceStatus)
		resp.AttendanceStatus = &attendance
	}

	return resp
}
