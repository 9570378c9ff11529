package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	paymentRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/payment"
	"github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/internal/service/debtgate"
	"github.com/equiclub/EQC-BookingService/internal/service/payments/models"
)

// Service сервис для работы с месячными платежами клиентов
type Service struct {
	paymentRepo PaymentRepository
	mailer      Mailer
	policy      domain.BookingPolicy
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	mailerClient Mailer,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		mailer:      mailerClient,
		policy:      policy,
		logger:      logger,
	}
}

// CreatePayment создает месячный платеж клиента
// Вызывается персоналом при выставлении счета за абонемент
func (s *Service) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("CreatePayment: client=%s, month=%s, amount=%.2f", req.ClientEmail, req.Month, req.Amount)

	if err := validateCreatePayment(req); err != nil {
		s.logger.Warn("CreatePayment: validation failed: %v", err)
		return nil, err
	}

	dueDate, err := time.Parse(domain.DateFormat, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dueDate format", ErrInvalidInput)
	}

	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		ClientEmail: req.ClientEmail,
		Month:       req.Month,
		Amount:      req.Amount,
		Total:       req.Amount,
		Status:      domain.PaymentStatusPending,
		DueDate:     dueDate,
	})
	if err != nil {
		s.logger.Error("CreatePayment: repository error for client=%s: %v", req.ClientEmail, err)
		return nil, fmt.Errorf("%w: CreatePayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePayment: created payment id=%d for client=%s", payment.ID, req.ClientEmail)
	return models.FromDomainPayment(payment), nil
}

// GetClientPayments получает историю платежей клиента
func (s *Service) GetClientPayments(ctx context.Context, clientEmail string) (*models.PaymentListResponse, error) {
	s.logger.Info("GetClientPayments: fetching payments for client=%s", clientEmail)

	payments, err := s.paymentRepo.GetByClientEmail(ctx, clientEmail)
	if err != nil {
		s.logger.Error("GetClientPayments: repository error for client=%s: %v", clientEmail, err)
		return nil, fmt.Errorf("%w: GetClientPayments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientPayments: fetched %d payments for client=%s", len(payments), clientEmail)
	return models.FromDomainPaymentList(payments), nil
}

// GetDebtStatus получает долговой статус клиента: суммарный долг,
// блокировку и список недоступных действий
func (s *Service) GetDebtStatus(ctx context.Context, clientEmail string) (*models.DebtStatusResponse, error) {
	s.logger.Info("GetDebtStatus: checking client=%s", clientEmail)

	payments, err := s.paymentRepo.GetUnpaidByClientEmail(ctx, clientEmail)
	if err != nil {
		s.logger.Error("GetDebtStatus: repository error for client=%s: %v", clientEmail, err)
		return nil, fmt.Errorf("%w: GetDebtStatus - repository error: %v", ErrInternal, err)
	}

	gate := debtgate.Evaluate(payments, s.policy)

	s.logger.Info("GetDebtStatus: client=%s, blocked=%v, outstanding=%.2f", clientEmail, gate.Blocked, gate.Outstanding)
	return &models.DebtStatusResponse{
		ClientEmail:  clientEmail,
		Blocked:      gate.Blocked,
		Outstanding:  gate.Outstanding,
		Threshold:    s.policy.DebtBlockThreshold,
		Restrictions: gate.Restrictions,
	}, nil
}

// MarkPaid помечает платеж оплаченным
func (s *Service) MarkPaid(ctx context.Context, paymentID int64) error {
	s.logger.Info("MarkPaid: payment id=%d", paymentID)

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("MarkPaid: payment id=%d not found", paymentID)
			return ErrPaymentNotFound
		}
		s.logger.Error("MarkPaid: repository error for payment id=%d: %v", paymentID, err)
		return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	if payment.IsPaid() {
		s.logger.Warn("MarkPaid: payment id=%d is already paid", paymentID)
		return ErrAlreadyPaid
	}

	if err := s.paymentRepo.MarkPaid(ctx, paymentID); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			// Гонка с параллельной оплатой: статус уже paid
			return ErrAlreadyPaid
		}
		s.logger.Error("MarkPaid: repository error for payment id=%d: %v", paymentID, err)
		return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkPaid: payment id=%d marked as paid", paymentID)
	return nil
}

// ApplyLateFees пересчитывает штрафы всех неоплаченных платежей по
// штрафной лестнице на момент asOf. Возвращает число обновленных платежей
// Запускается ежедневной фоновой задачей
func (s *Service) ApplyLateFees(ctx context.Context, asOf time.Time) (int, error) {
	s.logger.Info("ApplyLateFees: sweeping unpaid payments as of %s", asOf.Format(domain.DateFormat))

	payments, err := s.paymentRepo.GetUnpaid(ctx)
	if err != nil {
		s.logger.Error("ApplyLateFees: repository error: %v", err)
		return 0, fmt.Errorf("%w: ApplyLateFees - repository error: %v", ErrInternal, err)
	}

	updated := 0
	for _, payment := range payments {
		penalty, status, err := penaltyFor(payment.Month, asOf, s.policy)
		if err != nil {
			s.logger.Error("ApplyLateFees: invalid month=%s for payment id=%d: %v", payment.Month, payment.ID, err)
			continue
		}

		if penalty == payment.Penalty && status == payment.Status {
			continue
		}

		total := payment.Amount + penalty
		if err := s.paymentRepo.UpdatePenalty(ctx, payment.ID, penalty, total, status); err != nil {
			s.logger.Error("ApplyLateFees: failed to update payment id=%d: %v", payment.ID, err)
			continue
		}

		s.logger.Info("ApplyLateFees: payment id=%d client=%s month=%s penalty=%.2f status=%s",
			payment.ID, payment.ClientEmail, payment.Month, penalty, status)
		updated++
	}

	s.logger.Info("ApplyLateFees: updated %d of %d unpaid payments", updated, len(payments))
	return updated, nil
}

// SendReminders рассылает напоминания по всем неоплаченным платежам
// Запускается фоновой задачей, ошибки отправки только логируются
func (s *Service) SendReminders(ctx context.Context) (int, error) {
	s.logger.Info("SendReminders: sending payment reminders")

	payments, err := s.paymentRepo.GetUnpaid(ctx)
	if err != nil {
		s.logger.Error("SendReminders: repository error: %v", err)
		return 0, fmt.Errorf("%w: SendReminders - repository error: %v", ErrInternal, err)
	}

	sent := 0
	for _, payment := range payments {
		data := mailer.PaymentReminderData{
			ClientEmail: payment.ClientEmail,
			Month:       payment.Month,
			Amount:      payment.Amount,
			Penalty:     payment.Penalty,
			Outstanding: payment.Outstanding(),
			DueDate:     payment.DueDate,
		}

		if err := s.mailer.SendPaymentReminder(data); err != nil {
			s.logger.Error("SendReminders: failed to send reminder for payment id=%d: %v", payment.ID, err)
			continue
		}
		sent++
	}

	s.logger.Info("SendReminders: sent %d of %d reminders", sent, len(payments))
	return sent, nil
}

// validateCreatePayment валидирует запрос на создание платежа
func validateCreatePayment(req *models.CreatePaymentRequest) error {
	if strings.TrimSpace(req.ClientEmail) == "" || !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: clientEmail is not a valid email", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.MonthFormat, req.Month); err != nil {
		return fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidInput)
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if req.DueDate == "" {
		return fmt.Errorf("%w: dueDate is required", ErrInvalidInput)
	}

	return nil
}
