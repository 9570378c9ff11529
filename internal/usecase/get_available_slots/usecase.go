package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
	"github.com/equiclub/EQC-BookingService/internal/service/debtgate"
)

// UseCase use case получения доступных слотов для записи на занятие
type UseCase struct {
	lessonRepo      LessonRepository
	blockedSlotRepo BlockedSlotRepository
	paymentRepo     PaymentRepository
	catalogClient   CatalogClient
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	blockedSlotRepo BlockedSlotRepository,
	paymentRepo PaymentRepository,
	catalogClient CatalogClient,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:      lessonRepo,
		blockedSlotRepo: blockedSlotRepo,
		paymentRepo:     paymentRepo,
		catalogClient:   catalogClient,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: client=%s, service=%d, date=%s",
		req.ClientEmail, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrCatalogUnavailable, err)
	}

	// 5. Проверяем услугу
	if err := validateService(service.DurationMinutes, service.Active); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	// 6. Долговой гейт: заблокированный клиент не доходит до расчета доступности
	payments, err := uc.paymentRepo.GetUnpaidByClientEmail(ctx, req.ClientEmail)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get unpaid payments for client=%s: %v", req.ClientEmail, err)
		return nil, fmt.Errorf("%w: failed to get payments: %v", ErrInternal, err)
	}

	gate := debtgate.Evaluate(payments, uc.policy)
	if gate.Blocked {
		uc.logger.Warn("GetAvailableSlots: client=%s blocked, outstanding=%.2f", req.ClientEmail, gate.Outstanding)
		return nil, fmt.Errorf("%w: outstanding=%.2f", ErrClientBlocked, gate.Outstanding)
	}

	// 7. Воскресенье - выходной, слотов нет
	if !domain.IsWorkingDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is a day off", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			ServiceID: req.ServiceID,
			Slots:     []Slot{},
		}, nil
	}

	// 8. Получаем занятость и блокировки на дату
	lessons, err := uc.lessonRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
	}

	blocks, err := uc.blockedSlotRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 9. Вычисляем доступные слоты
	slots := availableSlots(req.Date, lessons, blocks, service.DurationMinutes, uc.policy)

	uc.logger.Info("GetAvailableSlots: %d slots available for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
