package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	bookingStorage "github.com/equiclub/EQC-BookingService/internal/infra/storage/booking"
	lessonStorage "github.com/equiclub/EQC-BookingService/internal/infra/storage/lesson"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/internal/service/bookings/models"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

var testMonday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByCode(_ context.Context, code string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.Code == code {
			return b, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByClientWithFilter(_ context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ClientEmail != filter.ClientEmail {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.Status = domain.BookingStatusCancelled
	if reason != "" {
		b.CancellationReason = &reason
	}
	return nil
}

func (r *fakeBookingRepo) MarkAttendance(_ context.Context, id int64, attendance domain.AttendanceStatus, compensable *bool) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.AttendanceStatus = &attendance
	b.AbsenceCompensable = compensable
	return nil
}

type fakeLessonRepo struct {
	lessons map[int64]*domain.Lesson
}

func (r *fakeLessonRepo) GetByID(_ context.Context, id int64) (*domain.Lesson, error) {
	l, ok := r.lessons[id]
	if !ok {
		return nil, lessonStorage.ErrLessonNotFound
	}
	return l, nil
}

func (r *fakeLessonRepo) GetBySlot(_ context.Context, date time.Time, startTime types.TimeString, serviceID int64) (*domain.Lesson, error) {
	for _, l := range r.lessons {
		if l.Date.Equal(date) && l.StartTime == startTime && l.ServiceID == serviceID {
			return l, nil
		}
	}
	return nil, lessonStorage.ErrLessonNotFound
}

func (r *fakeLessonRepo) DecrementBookedSpots(_ context.Context, id int64) error {
	l, ok := r.lessons[id]
	if !ok {
		return lessonStorage.ErrLessonNotFound
	}
	l.BookedSpots--
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMailer struct {
	approved []mailer.BookingEmailData
	rejected []mailer.BookingEmailData
}

func (m *fakeMailer) SendBookingApproved(data mailer.BookingEmailData) error {
	m.approved = append(m.approved, data)
	return nil
}

func (m *fakeMailer) SendBookingRejected(data mailer.BookingEmailData) error {
	m.rejected = append(m.rejected, data)
	return nil
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	lessons  *fakeLessonRepo
	mailer   *fakeMailer
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{bookings: map[int64]*domain.Booking{}},
		lessons:  &fakeLessonRepo{lessons: map[int64]*domain.Lesson{}},
		mailer:   &fakeMailer{},
	}
	f.svc = NewService(f.bookings, f.lessons, &fakeTxManager{}, f.mailer, &noopLogger{})
	return f
}

func (f *fixture) addLesson(id int64, start types.TimeString, booked int) {
	f.lessons.lessons[id] = &domain.Lesson{
		ID:          id,
		ServiceID:   10,
		Date:        testMonday,
		StartTime:   start,
		MaxSpots:    6,
		BookedSpots: booked,
		Status:      domain.LessonStatusScheduled,
	}
}

func (f *fixture) addBooking(id, lessonID int64, status domain.BookingStatus, durationMinutes int) {
	f.bookings.bookings[id] = &domain.Booking{
		ID:              id,
		Code:            "code-1",
		LessonID:        lessonID,
		ClientEmail:     "client@example.com",
		ClientName:      "Анна Петрова",
		Status:          status,
		ServiceID:       10,
		ServiceName:     "Занятие",
		DurationMinutes: durationMinutes,
	}
}

func TestCancel_ReleasesSpot(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)

	err := f.svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		ClientEmail:        "client@example.com",
		CancellationReason: "болезнь",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusCancelled, f.bookings.bookings[100].Status)
	assert.Equal(t, 2, f.lessons.lessons[1].BookedSpots)
}

func TestCancel_ReleasesChainedSpot(t *testing.T) {
	f := newFixture()
	// Часовое бронирование: занятие в 12:30 и сцепленное через перерыв в 14:30
	f.addLesson(1, "12:30", 2)
	f.addLesson(2, "14:30", 1)
	f.addBooking(100, 1, domain.BookingStatusApproved, 60)

	err := f.svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		ClientEmail: "client@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.lessons.lessons[1].BookedSpots)
	assert.Equal(t, 0, f.lessons.lessons[2].BookedSpots)
}

func TestCancel_AccessDenied(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 1)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)

	err := f.svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		ClientEmail: "other@example.com",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 1, f.lessons.lessons[1].BookedSpots)
}

func TestCancel_StaffBypass(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 1)
	f.addBooking(100, 1, domain.BookingStatusPending, 30)

	// Пустой email означает запрос персонала
	err := f.svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, f.bookings.bookings[100].Status)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 1)
	f.addBooking(100, 1, domain.BookingStatusCancelled, 30)

	err := f.svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		ClientEmail: "client@example.com",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 404, &models.CancelBookingRequest{
		ClientEmail: "client@example.com",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestReview_Approve(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusPending, 30)

	err := f.svc.Review(context.Background(), 100, &models.ReviewBookingRequest{Status: "approved"})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusApproved, f.bookings.bookings[100].Status)
	// Подтверждение не трогает занятость
	assert.Equal(t, 3, f.lessons.lessons[1].BookedSpots)
	assert.Len(t, f.mailer.approved, 1)
	assert.Empty(t, f.mailer.rejected)
}

func TestReview_RejectReleasesSpots(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusPending, 30)

	reason := "нет свободного инструктора"
	err := f.svc.Review(context.Background(), 100, &models.ReviewBookingRequest{
		Status: "rejected",
		Reason: &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusRejected, f.bookings.bookings[100].Status)
	assert.Equal(t, 2, f.lessons.lessons[1].BookedSpots)
	require.Len(t, f.mailer.rejected, 1)
	assert.Equal(t, reason, f.mailer.rejected[0].Reason)
}

func TestReview_OnlyPending(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)

	err := f.svc.Review(context.Background(), 100, &models.ReviewBookingRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrCannotReview)
}

func TestReview_InvalidStatus(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusPending, 30)

	for _, status := range []string{"cancelled", "pending", "unknown"} {
		err := f.svc.Review(context.Background(), 100, &models.ReviewBookingRequest{Status: status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestMarkAttendance(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)

	compensable := true
	err := f.svc.MarkAttendance(context.Background(), 100, &models.MarkAttendanceRequest{
		Attendance:  "absent",
		Compensable: &compensable,
	})
	require.NoError(t, err)

	booking := f.bookings.bookings[100]
	require.NotNil(t, booking.AttendanceStatus)
	assert.Equal(t, domain.AttendanceAbsent, *booking.AttendanceStatus)
	require.NotNil(t, booking.AbsenceCompensable)
	assert.True(t, *booking.AbsenceCompensable)
}

func TestMarkAttendance_PresentDropsCompensable(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)

	compensable := true
	err := f.svc.MarkAttendance(context.Background(), 100, &models.MarkAttendanceRequest{
		Attendance:  "present",
		Compensable: &compensable,
	})
	require.NoError(t, err)

	booking := f.bookings.bookings[100]
	require.NotNil(t, booking.AttendanceStatus)
	assert.Equal(t, domain.AttendancePresent, *booking.AttendanceStatus)
	assert.Nil(t, booking.AbsenceCompensable)
}

func TestGetByID_ClientAccess(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)

	resp, err := f.svc.GetByID(context.Background(), 100, "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)

	_, err = f.svc.GetByID(context.Background(), 100, "other@example.com")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Персонал видит любое бронирование
	_, err = f.svc.GetByID(context.Background(), 100, "")
	assert.NoError(t, err)
}

func TestGetClientBookings_HidesInactiveByDefault(t *testing.T) {
	f := newFixture()
	f.addLesson(1, "09:00", 3)
	f.addBooking(100, 1, domain.BookingStatusApproved, 30)
	f.addBooking(101, 1, domain.BookingStatusCancelled, 30)

	resp, err := f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientEmail: "client@example.com",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientEmail:     "client@example.com",
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}
