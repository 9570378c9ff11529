package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/internal/service/debtgate"
)

// UseCase use case создания бронирования
type UseCase struct {
	lessonRepo      LessonRepository
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	paymentRepo     PaymentRepository
	catalogClient   CatalogClient
	txManager       TxManager
	mailer          Mailer
	codeGen         CodeGenerator
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	paymentRepo PaymentRepository,
	catalogClient CatalogClient,
	txManager TxManager,
	mailerClient Mailer,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:      lessonRepo,
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		paymentRepo:     paymentRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		mailer:          mailerClient,
		codeGen:         &UUIDCodeGenerator{},
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, service=%d, slots=%d",
		req.ClientEmail, req.ServiceID, len(req.Slots))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrCatalogUnavailable, err)
	}

	// 3. Проверяем услугу и число слотов
	if err := validateService(service, len(req.Slots)); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	// 4. Проверяем каждый выбранный слот: дата, рабочий день, сетка
	now := uc.timeProvider.Now()
	for _, sel := range req.Slots {
		if err := validateSelection(sel, now); err != nil {
			uc.logger.Warn("CreateBooking: slot rejected: %v", err)
			return nil, err
		}
	}

	// 5. Долговой гейт: должник не может бронировать
	payments, err := uc.paymentRepo.GetUnpaidByClientEmail(ctx, req.ClientEmail)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get unpaid payments for client=%s: %v", req.ClientEmail, err)
		return nil, fmt.Errorf("%w: failed to get payments: %v", ErrInternal, err)
	}

	gate := debtgate.Evaluate(payments, uc.policy)
	if gate.Blocked {
		uc.logger.Warn("CreateBooking: client=%s blocked, outstanding=%.2f", req.ClientEmail, gate.Outstanding)
		return nil, fmt.Errorf("%w: outstanding=%.2f", ErrClientBlocked, gate.Outstanding)
	}

	status := uc.bookingStatus(service)

	// 6. Резервируем места и создаем бронирования в одной сериализуемой
	// транзакции: либо весь запрос, либо ничего
	var created []*domain.Booking
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		for _, sel := range req.Slots {
			lesson, err := uc.reserveSelection(txCtx, sel, service)
			if err != nil {
				return err
			}

			booking, err := uc.createBooking(txCtx, req, service, lesson, status)
			if err != nil {
				return err
			}

			created = append(created, booking)
		}

		return nil
	})
	if txErr != nil {
		uc.logger.Warn("CreateBooking: transaction failed for client=%s: %v", req.ClientEmail, txErr)
		return nil, uc.mapTxError(txErr)
	}

	// 7. Уведомляем клиента. Письмо не входит в транзакцию - сбой
	// отправки не отменяет бронирование
	uc.notify(req, created, service, status)

	uc.logger.Info("CreateBooking: created %d bookings for client=%s, status=%s",
		len(created), req.ClientEmail, status)

	return uc.buildResponse(req, created, service), nil
}

// bookingStatus определяет начальный статус бронирования.
// Недельные планы всегда уходят на подтверждение администратору,
// разовые записи подтверждаются автоматически, если услуга это разрешает
func (uc *UseCase) bookingStatus(service *catalogservice.Service) domain.BookingStatus {
	if service.IsWeeklyPlan() {
		return domain.BookingStatusPending
	}
	if service.AutoApprove {
		return domain.BookingStatusApproved
	}
	return domain.BookingStatusPending
}

// createBooking создает запись бронирования с денормализованными данными услуги
func (uc *UseCase) createBooking(
	ctx context.Context,
	req *Request,
	service *catalogservice.Service,
	lesson *domain.Lesson,
	status domain.BookingStatus,
) (*domain.Booking, error) {
	var price float64
	if service.Price != nil {
		price = *service.Price
	}

	booking, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		Code:            uc.codeGen.NewCode(),
		LessonID:        lesson.ID,
		ClientEmail:     req.ClientEmail,
		ClientName:      req.ClientName,
		Status:          status,
		IsFixedStudent:  req.IsFixedStudent,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		ServicePrice:    price,
		DurationMinutes: service.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return booking, nil
}

// mapTxError возвращает ошибку use case как есть, все остальное
// (в том числе исчерпание ретраев сериализации) заворачивает в ErrInternal
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotBlocked),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// notify отправляет письма о созданных бронированиях, ошибки только логируются
func (uc *UseCase) notify(req *Request, bookings []*domain.Booking, service *catalogservice.Service, status domain.BookingStatus) {
	for i, booking := range bookings {
		data := mailer.BookingEmailData{
			ClientEmail: req.ClientEmail,
			ClientName:  req.ClientName,
			BookingCode: booking.Code,
			ServiceName: service.Name,
			Date:        req.Slots[i].Date,
			StartTime:   req.Slots[i].StartTime.String(),
		}

		var err error
		if status == domain.BookingStatusApproved {
			err = uc.mailer.SendBookingApproved(data)
		} else {
			err = uc.mailer.SendBookingConfirmation(data)
		}
		if err != nil {
			uc.logger.Error("CreateBooking: failed to send email for booking=%s: %v", booking.Code, err)
		}
	}
}

func (uc *UseCase) buildResponse(req *Request, bookings []*domain.Booking, service *catalogservice.Service) *Response {
	result := make([]CreatedBooking, 0, len(bookings))
	for i, booking := range bookings {
		result = append(result, CreatedBooking{
			ID:              booking.ID,
			Code:            booking.Code,
			LessonID:        booking.LessonID,
			Date:            req.Slots[i].Date,
			StartTime:       req.Slots[i].StartTime,
			Status:          booking.Status,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
		})
	}
	return &Response{Bookings: result}
}
