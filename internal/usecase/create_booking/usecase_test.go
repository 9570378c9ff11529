package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	lessonStorage "github.com/equiclub/EQC-BookingService/internal/infra/storage/lesson"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

var (
	testNow    = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
)

type fakeLessonRepo struct {
	lessons []*domain.Lesson
	nextID  int64
}

func (r *fakeLessonRepo) Create(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	r.nextID++
	created := *lesson
	created.ID = r.nextID
	r.lessons = append(r.lessons, &created)
	return &created, nil
}

func (r *fakeLessonRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Lesson, error) {
	out := make([]*domain.Lesson, 0)
	for _, l := range r.lessons {
		if l.Date.Equal(date) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLessonRepo) GetBySlot(_ context.Context, date time.Time, startTime types.TimeString, serviceID int64) (*domain.Lesson, error) {
	for _, l := range r.lessons {
		if l.Date.Equal(date) && l.StartTime == startTime && l.ServiceID == serviceID {
			return l, nil
		}
	}
	return nil, lessonStorage.ErrLessonNotFound
}

func (r *fakeLessonRepo) IncrementBookedSpots(_ context.Context, id int64) error {
	for _, l := range r.lessons {
		if l.ID == id {
			if l.BookedSpots >= l.MaxSpots {
				return lessonStorage.ErrCapacityExceeded
			}
			l.BookedSpots++
			return nil
		}
	}
	return lessonStorage.ErrLessonNotFound
}

func (r *fakeLessonRepo) bySlot(start types.TimeString, serviceID int64) *domain.Lesson {
	lesson, _ := r.GetBySlot(context.Background(), testMonday, start, serviceID)
	return lesson
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	created := *booking
	created.ID = r.nextID
	r.bookings = append(r.bookings, &created)
	return &created, nil
}

type fakeBlockedSlotRepo struct {
	blocks []*domain.BlockedSlot
}

func (r *fakeBlockedSlotRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	out := make([]*domain.BlockedSlot, 0)
	for _, b := range r.blocks {
		if b.Date.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (r *fakePaymentRepo) GetUnpaidByClientEmail(_ context.Context, _ string) ([]*domain.Payment, error) {
	return r.payments, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
}

func (c *fakeCatalogClient) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	if c.service == nil || c.service.ID != serviceID {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

// fakeTxManager выполняет функцию без транзакции: сами сценарии однопоточные
type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMailer struct {
	confirmations []mailer.BookingEmailData
	approvals     []mailer.BookingEmailData
}

func (m *fakeMailer) SendBookingConfirmation(data mailer.BookingEmailData) error {
	m.confirmations = append(m.confirmations, data)
	return nil
}

func (m *fakeMailer) SendBookingApproved(data mailer.BookingEmailData) error {
	m.approvals = append(m.approvals, data)
	return nil
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	lessons  *fakeLessonRepo
	bookings *fakeBookingRepo
	blocks   *fakeBlockedSlotRepo
	payments *fakePaymentRepo
	mailer   *fakeMailer
}

func newFixture(service *catalogservice.Service) *fixture {
	f := &fixture{
		lessons:  &fakeLessonRepo{},
		bookings: &fakeBookingRepo{},
		blocks:   &fakeBlockedSlotRepo{},
		payments: &fakePaymentRepo{},
		mailer:   &fakeMailer{},
	}
	f.uc = NewUseCase(
		f.lessons,
		f.bookings,
		f.blocks,
		f.payments,
		&fakeCatalogClient{service: service},
		&fakeTxManager{},
		f.mailer,
		domain.DefaultBookingPolicy(),
		&noopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func singleService() *catalogservice.Service {
	price := 25.0
	return &catalogservice.Service{
		ID:              10,
		Name:            "Разовое занятие 30 минут",
		DurationMinutes: 30,
		Price:           &price,
		AutoApprove:     false,
		WeeklyFrequency: 1,
		Active:          true,
	}
}

func requestFor(slots ...SlotSelection) *Request {
	return &Request{
		ClientEmail: "client@example.com",
		ClientName:  "Анна Петрова",
		ServiceID:   10,
		Slots:       slots,
	}
}

func TestExecute_CreatesLessonLazily(t *testing.T) {
	f := newFixture(singleService())

	resp, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "09:00"},
	))
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	created := resp.Bookings[0]
	assert.NotEmpty(t, created.Code)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, types.TimeString("09:00"), created.StartTime)

	// Занятие создано лениво с первым занятым местом
	lesson := f.lessons.bySlot("09:00", 10)
	require.NotNil(t, lesson)
	assert.Equal(t, 1, lesson.BookedSpots)
	assert.Equal(t, types.TimeString("09:30"), lesson.EndTime)
	assert.Equal(t, created.LessonID, lesson.ID)

	require.Len(t, f.mailer.confirmations, 1)
	assert.Empty(t, f.mailer.approvals)
}

func TestExecute_ReusesExistingLesson(t *testing.T) {
	f := newFixture(singleService())
	f.lessons.lessons = []*domain.Lesson{
		{ID: 1, ServiceID: 10, Date: testMonday, StartTime: "09:00", EndTime: "09:30", MaxSpots: 6, BookedSpots: 2, Status: domain.LessonStatusScheduled},
	}
	f.lessons.nextID = 1

	resp, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "09:00"},
	))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Bookings[0].LessonID)
	assert.Equal(t, 3, f.lessons.bySlot("09:00", 10).BookedSpots)
	assert.Len(t, f.lessons.lessons, 1)
}

func TestExecute_AutoApprove(t *testing.T) {
	service := singleService()
	service.AutoApprove = true
	f := newFixture(service)

	resp, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "10:00"},
	))
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusApproved, resp.Bookings[0].Status)
	assert.Len(t, f.mailer.approvals, 1)
	assert.Empty(t, f.mailer.confirmations)
}

func TestExecute_ChainedSlotForHourService(t *testing.T) {
	service := singleService()
	service.DurationMinutes = 60
	f := newFixture(service)

	resp, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "12:30"},
	))
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	// Часовая услуга занимает место и в сцепленном слоте: за 12:30 через
	// перерыв идет 14:30
	require.NotNil(t, f.lessons.bySlot("12:30", 10))
	chained := f.lessons.bySlot("14:30", 10)
	require.NotNil(t, chained)
	assert.Equal(t, 1, chained.BookedSpots)

	// Бронирование ссылается на первое занятие пары
	assert.Equal(t, f.lessons.bySlot("12:30", 10).ID, resp.Bookings[0].LessonID)
}

func TestExecute_ChainedSlotFull(t *testing.T) {
	service := singleService()
	service.DurationMinutes = 60
	f := newFixture(service)
	f.lessons.lessons = []*domain.Lesson{
		{ID: 1, ServiceID: 20, Date: testMonday, StartTime: "09:30", EndTime: "10:00", MaxSpots: 6, BookedSpots: 6, Status: domain.LessonStatusScheduled},
	}
	f.lessons.nextID = 1

	_, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, f.bookings.bookings)
}

func TestExecute_CapacitySharedAcrossServices(t *testing.T) {
	f := newFixture(singleService())
	// Потолок общий: чужая услуга уже заняла все места слота
	f.lessons.lessons = []*domain.Lesson{
		{ID: 1, ServiceID: 20, Date: testMonday, StartTime: "09:00", EndTime: "09:30", MaxSpots: 6, BookedSpots: 6, Status: domain.LessonStatusScheduled},
	}
	f.lessons.nextID = 1

	_, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_BlockedSlot(t *testing.T) {
	blocked := types.TimeString("09:00")
	f := newFixture(singleService())
	f.blocks.blocks = []*domain.BlockedSlot{{Date: testMonday, TimeSlot: &blocked}}

	_, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestExecute_DayBlocked(t *testing.T) {
	f := newFixture(singleService())
	f.blocks.blocks = []*domain.BlockedSlot{{Date: testMonday, TimeSlot: nil}}

	_, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "11:00"},
	))
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestExecute_DebtGate(t *testing.T) {
	cases := []struct {
		name        string
		outstanding float64
		wantBlocked bool
	}{
		{name: "долг ровно на пороге не блокирует", outstanding: 30.00, wantBlocked: false},
		{name: "долг выше порога блокирует", outstanding: 30.01, wantBlocked: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(singleService())
			f.payments.payments = []*domain.Payment{
				{Amount: tc.outstanding, Total: tc.outstanding, Status: domain.PaymentStatusOverdue},
			}

			_, err := f.uc.Execute(context.Background(), requestFor(
				SlotSelection{Date: testMonday, StartTime: "09:00"},
			))
			if tc.wantBlocked {
				assert.ErrorIs(t, err, ErrClientBlocked)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_WeeklyPlan(t *testing.T) {
	service := singleService()
	service.WeeklyFrequency = 2
	service.AutoApprove = true

	t.Run("число слотов должно совпадать с частотой", func(t *testing.T) {
		f := newFixture(service)
		_, err := f.uc.Execute(context.Background(), requestFor(
			SlotSelection{Date: testMonday, StartTime: "09:00"},
		))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("недельный план всегда уходит на подтверждение", func(t *testing.T) {
		f := newFixture(service)
		wednesday := testMonday.AddDate(0, 0, 2)

		resp, err := f.uc.Execute(context.Background(), requestFor(
			SlotSelection{Date: testMonday, StartTime: "09:00"},
			SlotSelection{Date: wednesday, StartTime: "09:00"},
		))
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 2)

		// auto_approve игнорируется для недельных планов
		for _, b := range resp.Bookings {
			assert.Equal(t, domain.BookingStatusPending, b.Status)
		}
		assert.NotEqual(t, resp.Bookings[0].Code, resp.Bookings[1].Code)
		assert.Len(t, f.mailer.confirmations, 2)
	})
}

func TestExecute_SlotOutsideGrid(t *testing.T) {
	cases := []struct {
		name    string
		sel     SlotSelection
		wantErr error
	}{
		{name: "обеденный перерыв", sel: SlotSelection{Date: testMonday, StartTime: "13:00"}, wantErr: ErrSlotNotInGrid},
		{name: "не кратно 30 минутам", sel: SlotSelection{Date: testMonday, StartTime: "09:15"}, wantErr: ErrSlotNotInGrid},
		{name: "воскресенье", sel: SlotSelection{Date: time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), StartTime: "09:00"}, wantErr: ErrInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(singleService())
			_, err := f.uc.Execute(context.Background(), requestFor(tc.sel))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(singleService())
	friday := time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: friday, StartTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(singleService())

	req := requestFor(SlotSelection{Date: testMonday, StartTime: "09:00"})
	req.ServiceID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	service := singleService()
	service.Active = false
	f := newFixture(service)

	_, err := f.uc.Execute(context.Background(), requestFor(
		SlotSelection{Date: testMonday, StartTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrServiceInactive)
}
