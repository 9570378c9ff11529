package models

import (
	"errors"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidAttendance возвращается при некорректной отметке посещаемости
	ErrInvalidAttendance = errors.New("invalid attendance status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ClientEmail        string `json:"clientEmail"`
	CancellationReason string `json:"cancellationReason"`
}

// ReviewBookingRequest запрос администратора на подтверждение или отклонение
type ReviewBookingRequest struct {
	Status string  `json:"status"` // "approved" или "rejected"
	Reason *string `json:"reason,omitempty"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientEmail     string  `json:"clientEmail"`
	Status          *string `json:"status,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// MarkAttendanceRequest запрос на отметку посещаемости
type MarkAttendanceRequest struct {
	Attendance  string `json:"attendance"` // "present" или "absent"
	Compensable *bool  `json:"compensable,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClientBookingsRequest) ToDomainFilter() (domain.ClientBookingsFilter, error) {
	filter := domain.ClientBookingsFilter{
		ClientEmail:     r.ClientEmail,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64   `json:"id"`
	Code               string  `json:"code"`
	LessonID           int64   `json:"lessonId"`
	ClientEmail        string  `json:"clientEmail"`
	ClientName         string  `json:"clientName"`
	Status             string  `json:"status"`
	IsFixedStudent     bool    `json:"isFixedStudent"`
	AttendanceStatus   *string `json:"attendanceStatus,omitempty"`
	AbsenceCompensable *bool   `json:"absenceCompensable,omitempty"`
	ServiceID          int64   `json:"serviceId"`
	ServiceName        string  `json:"serviceName"`
	ServicePrice       float64 `json:"servicePrice"`
	DurationMinutes    int     `json:"durationMinutes"`
	Date               *string `json:"date,omitempty"`      // "2026-03-14"
	StartTime          *string `json:"startTime,omitempty"` // "09:30"
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в response.
// lesson может быть nil, если занятие недоступно - дата и время опускаются
func FromDomainBooking(booking *domain.Booking, lesson *domain.Lesson) *BookingResponse {
	resp := &BookingResponse{
		ID:                 booking.ID,
		Code:               booking.Code,
		LessonID:           booking.LessonID,
		ClientEmail:        booking.ClientEmail,
		ClientName:         booking.ClientName,
		Status:             string(booking.Status),
		IsFixedStudent:     booking.IsFixedStudent,
		AbsenceCompensable: booking.AbsenceCompensable,
		ServiceID:          booking.ServiceID,
		ServiceName:        booking.ServiceName,
		ServicePrice:       booking.ServicePrice,
		DurationMinutes:    booking.DurationMinutes,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CreatedAt:          booking.CreatedAt.Format(time.RFC3339),
	}

	if booking.AttendanceStatus != nil {
		attendance := string(*booking.AttendanceStatus)
		resp.AttendanceStatus = &attendance
	}

	if lesson != nil {
		date := lesson.Date.Format(domain.DateFormat)
		startTime := lesson.StartTime.String()
		resp.Date = &date
		resp.StartTime = &startTime
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований в response.
// lessons - занятия по ID для подстановки даты и времени
func FromDomainBookingList(bookings []*domain.Booking, lessons map[int64]*domain.Lesson) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, FromDomainBooking(booking, lessons[booking.LessonID]))
	}

	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.BookingStatusPending,
		domain.BookingStatusApproved,
		domain.BookingStatusRejected,
		domain.BookingStatusCancelled:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainAttendanceStatus конвертирует строку в domain.AttendanceStatus
func ToDomainAttendanceStatus(attendance string) (domain.AttendanceStatus, error) {
	switch domain.AttendanceStatus(attendance) {
	case domain.AttendancePresent, domain.AttendanceAbsent:
		return domain.AttendanceStatus(attendance), nil
	default:
		return "", ErrInvalidAttendance
	}
}
