package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// AttendanceStatus отметка посещаемости занятия
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Booking represents one client's claim on one lesson slot
// Для часовых услуг ссылается на первый из двух сцепленных Lesson
type Booking struct {
	ID          int64
	Code        string // Публичный идентификатор для клиента (UUID)
	LessonID    int64
	ClientEmail string
	ClientName  string
	Status      BookingStatus

	IsFixedStudent     bool
	AttendanceStatus   *AttendanceStatus
	AbsenceCompensable *bool

	// Denormalized data for history
	ServiceID       int64
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies a spot
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}

// CanBeReviewed returns true if staff can approve or reject the booking
func (b *Booking) CanBeReviewed() bool {
	return b.Status == BookingStatusPending
}

// TakesChainedSlot returns true if the booking occupies two chained slots
func (b *Booking) TakesChainedSlot() bool {
	return b.DurationMinutes > SlotDurationMinutes
}

// ClientBookingsFilter фильтр для выборки бронирований клиента
type ClientBookingsFilter struct {
	ClientEmail     string
	Status          *BookingStatus
	IncludeInactive bool
}
