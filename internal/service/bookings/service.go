package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	bookingRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/booking"
	lessonRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/lesson"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	lessonRepo  LessonRepository
	txManager   TransactionManager
	mailer      Mailer
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	lessonRepo LessonRepository,
	txManager TransactionManager,
	mailerClient Mailer,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		lessonRepo:  lessonRepo,
		txManager:   txManager,
		mailer:      mailerClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, для персонала clientEmail пустой
func (s *Service) GetByID(ctx context.Context, id int64, clientEmail string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for client=%s", id, clientEmail)

	booking, err := s.fetchBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkClientAccess(booking, clientEmail); err != nil {
		s.logger.Warn("GetByID: access denied for client=%s to booking id=%d", clientEmail, id)
		return nil, err
	}

	return models.FromDomainBooking(booking, s.lessonOrNil(ctx, booking.LessonID)), nil
}

// GetByCode получает бронирование по публичному коду
func (s *Service) GetByCode(ctx context.Context, code string, clientEmail string) (*models.BookingResponse, error) {
	s.logger.Info("GetByCode: fetching booking code=%s for client=%s", code, clientEmail)

	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	if err := s.checkClientAccess(booking, clientEmail); err != nil {
		s.logger.Warn("GetByCode: access denied for client=%s to booking code=%s", clientEmail, code)
		return nil, err
	}

	return models.FromDomainBooking(booking, s.lessonOrNil(ctx, booking.LessonID)), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу, отмененные скрыты по умолчанию
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%s, status=%v", req.ClientEmail, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientBookings: invalid status=%v for client=%s", req.Status, req.ClientEmail)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByClientWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientEmail, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	lessons := s.lessonsByID(ctx, bookings)

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%s", len(bookings), req.ClientEmail)
	return models.FromDomainBookingList(bookings, lessons), nil
}

// Cancel отменяет бронирование и освобождает занятые места
// Клиент может отменить только свое бронирование, персонал - любое
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by client=%s", bookingID, req.ClientEmail)

	booking, err := s.fetchBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.checkClientAccess(booking, req.ClientEmail); err != nil {
		s.logger.Warn("Cancel: access denied for client=%s to booking id=%d", req.ClientEmail, bookingID)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Отмена и освобождение мест атомарны: место не может остаться
	// занятым у отмененного бронирования
	txErr := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		return s.releaseSpots(txCtx, booking)
	})
	if txErr != nil {
		s.logger.Error("Cancel: transaction failed for booking id=%d: %v", bookingID, txErr)
		return fmt.Errorf("%w: Cancel - transaction failed: %v", ErrInternal, txErr)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Review подтверждает или отклоняет бронирование в статусе pending
// Отклонение освобождает занятые места, клиент уведомляется письмом
func (s *Service) Review(ctx context.Context, bookingID int64, req *models.ReviewBookingRequest) error {
	s.logger.Info("Review: booking id=%d, status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || (newStatus != domain.BookingStatusApproved && newStatus != domain.BookingStatusRejected) {
		s.logger.Warn("Review: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: review status must be approved or rejected", ErrInvalidStatus)
	}

	booking, err := s.fetchBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !booking.CanBeReviewed() {
		s.logger.Warn("Review: booking id=%d cannot be reviewed, status=%s", bookingID, booking.Status)
		return ErrCannotReview
	}

	if newStatus == domain.BookingStatusApproved {
		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			s.logger.Error("Review: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Review - repository error: %v", ErrInternal, err)
		}
	} else {
		// Отклоненное бронирование больше не занимает места
		txErr := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
				return fmt.Errorf("failed to update status: %w", err)
			}
			return s.releaseSpots(txCtx, booking)
		})
		if txErr != nil {
			s.logger.Error("Review: transaction failed for booking id=%d: %v", bookingID, txErr)
			return fmt.Errorf("%w: Review - transaction failed: %v", ErrInternal, txErr)
		}
	}

	s.notifyReview(ctx, booking, newStatus, req.Reason)

	s.logger.Info("Review: booking id=%d updated to status=%s", bookingID, newStatus)
	return nil
}

// MarkAttendance отмечает посещаемость занятия
// Для пропуска персонал указывает, компенсируется ли занятие
func (s *Service) MarkAttendance(ctx context.Context, bookingID int64, req *models.MarkAttendanceRequest) error {
	s.logger.Info("MarkAttendance: booking id=%d, attendance=%s", bookingID, req.Attendance)

	attendance, err := models.ToDomainAttendanceStatus(req.Attendance)
	if err != nil {
		s.logger.Warn("MarkAttendance: invalid attendance=%s for booking id=%d", req.Attendance, bookingID)
		return fmt.Errorf("%w: attendance must be present or absent", ErrInvalidInput)
	}

	booking, err := s.fetchBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !booking.IsActive() {
		s.logger.Warn("MarkAttendance: booking id=%d is not active, status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: booking is not active", ErrInvalidInput)
	}

	compensable := req.Compensable
	if attendance == domain.AttendancePresent {
		// Компенсация имеет смысл только для пропуска
		compensable = nil
	}

	if err := s.bookingRepo.MarkAttendance(ctx, bookingID, attendance, compensable); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkAttendance: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkAttendance - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAttendance: booking id=%d marked as %s", bookingID, attendance)
	return nil
}

// Вспомогательные методы

// fetchBooking получает бронирование, конвертируя ошибки репозитория
func (s *Service) fetchBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("fetchBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("fetchBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkClientAccess проверяет, что клиент обращается к своему бронированию.
// Пустой clientEmail означает запрос персонала - проверка пропускается
func (s *Service) checkClientAccess(booking *domain.Booking, clientEmail string) error {
	if clientEmail == "" || booking.ClientEmail == clientEmail {
		return nil
	}
	return ErrAccessDenied
}

// releaseSpots освобождает места занятого слота (и сцепленного для часовых услуг)
// Вызывается только внутри транзакции
func (s *Service) releaseSpots(ctx context.Context, booking *domain.Booking) error {
	lesson, err := s.lessonRepo.GetByID(ctx, booking.LessonID)
	if err != nil {
		return fmt.Errorf("failed to get lesson id=%d: %w", booking.LessonID, err)
	}

	if err := s.lessonRepo.DecrementBookedSpots(ctx, lesson.ID); err != nil {
		return fmt.Errorf("failed to decrement lesson id=%d: %w", lesson.ID, err)
	}

	if !booking.TakesChainedSlot() {
		return nil
	}

	next, ok := domain.NextGridSlot(lesson.Date, lesson.StartTime)
	if !ok {
		// Последний слот сетки: сцепленного занятия нет
		return nil
	}

	chained, err := s.lessonRepo.GetBySlot(ctx, lesson.Date, next, booking.ServiceID)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get chained lesson: %w", err)
	}

	if err := s.lessonRepo.DecrementBookedSpots(ctx, chained.ID); err != nil {
		return fmt.Errorf("failed to decrement chained lesson id=%d: %w", chained.ID, err)
	}

	return nil
}

// lessonOrNil получает занятие для подстановки даты и времени в ответ.
// Ошибка не фатальна - ответ уйдет без даты
func (s *Service) lessonOrNil(ctx context.Context, lessonID int64) *domain.Lesson {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		s.logger.Warn("lessonOrNil: failed to get lesson id=%d: %v", lessonID, err)
		return nil
	}
	return lesson
}

// lessonsByID собирает занятия списка бронирований по ID
func (s *Service) lessonsByID(ctx context.Context, bookings []*domain.Booking) map[int64]*domain.Lesson {
	lessons := make(map[int64]*domain.Lesson, len(bookings))
	for _, booking := range bookings {
		if _, ok := lessons[booking.LessonID]; ok {
			continue
		}
		if lesson := s.lessonOrNil(ctx, booking.LessonID); lesson != nil {
			lessons[booking.LessonID] = lesson
		}
	}
	return lessons
}

// notifyReview отправляет клиенту письмо о решении, ошибки только логируются
func (s *Service) notifyReview(ctx context.Context, booking *domain.Booking, status domain.BookingStatus, reason *string) {
	lesson := s.lessonOrNil(ctx, booking.LessonID)

	data := mailer.BookingEmailData{
		ClientEmail: booking.ClientEmail,
		ClientName:  booking.ClientName,
		BookingCode: booking.Code,
		ServiceName: booking.ServiceName,
	}
	if lesson != nil {
		data.Date = lesson.Date
		data.StartTime = lesson.StartTime.String()
	}

	var err error
	if status == domain.BookingStatusApproved {
		err = s.mailer.SendBookingApproved(data)
	} else {
		if reason != nil {
			data.Reason = *reason
		}
		err = s.mailer.SendBookingRejected(data)
	}
	if err != nil {
		s.logger.Error("notifyReview: failed to send email for booking=%s: %v", booking.Code, err)
	}
}
