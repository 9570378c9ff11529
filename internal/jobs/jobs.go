// Package jobs фоновые задачи сервиса: ежедневный пересчет штрафов
// по неоплаченным платежам и рассылка напоминаний об оплате
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// PaymentsService интерфейс сервиса платежей для фоновых задач
type PaymentsService interface {
	ApplyLateFees(ctx context.Context, asOf time.Time) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler планировщик фоновых задач
type Scheduler struct {
	cron     *cron.Cron
	payments PaymentsService
	timeout  time.Duration
	logger   Logger
}

// NewScheduler создает планировщик и регистрирует задачи по cron-выражениям
func NewScheduler(payments PaymentsService, penaltySpec, reminderSpec string, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		payments: payments,
		timeout:  5 * time.Minute,
		logger:   logger,
	}

	if _, err := s.cron.AddFunc(penaltySpec, s.runPenaltySweep); err != nil {
		return nil, err
	}

	if _, err := s.cron.AddFunc(reminderSpec, s.runReminders); err != nil {
		return nil, err
	}

	return s, nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.logger.Info("jobs: scheduler started")
	s.cron.Start()
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("jobs: scheduler stopped")
}

// runPenaltySweep пересчитывает штрафы по штрафной лестнице
func (s *Scheduler) runPenaltySweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	updated, err := s.payments.ApplyLateFees(ctx, time.Now())
	if err != nil {
		s.logger.Error("jobs: penalty sweep failed: %v", err)
		return
	}

	s.logger.Info("jobs: penalty sweep finished, %d payments updated", updated)
}

// runReminders рассылает напоминания об оплате
func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.payments.SendReminders(ctx)
	if err != nil {
		s.logger.Error("jobs: payment reminders failed: %v", err)
		return
	}

	s.logger.Info("jobs: payment reminders finished, %d sent", sent)
}
