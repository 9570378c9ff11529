package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockSlotHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/cancel_booking"
	cancelLessonHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/cancel_lesson"
	createBookingHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/create_booking"
	createLessonHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/create_lesson"
	createPaymentHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/create_payment"
	getAvailableSlotsHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/get_client_bookings"
	getClientPaymentsHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/get_client_payments"
	getDayScheduleHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/get_day_schedule"
	getDebtStatusHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/get_debt_status"
	markAttendanceHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/mark_attendance"
	markPaymentPaidHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/mark_payment_paid"
	reviewBookingHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/review_booking"
	unblockSlotHandler "github.com/equiclub/EQC-BookingService/internal/api/handlers/unblock_slot"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/app"
	"github.com/equiclub/EQC-BookingService/internal/config"
	blockedSlotRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/blockedslot"
	bookingRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/booking"
	lessonRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/lesson"
	paymentRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/payment"
	catalogServiceClient "github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
	mailerClient "github.com/equiclub/EQC-BookingService/internal/integrations/mailer"
	"github.com/equiclub/EQC-BookingService/internal/jobs"
	bookingsService "github.com/equiclub/EQC-BookingService/internal/service/bookings"
	paymentsService "github.com/equiclub/EQC-BookingService/internal/service/payments"
	scheduleService "github.com/equiclub/EQC-BookingService/internal/service/schedule"
	createBookingUC "github.com/equiclub/EQC-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/equiclub/EQC-BookingService/internal/usecase/get_available_slots"
	"github.com/equiclub/EQC-BookingService/pkg/dbmetrics"
	"github.com/equiclub/EQC-BookingService/pkg/logger"
	"github.com/equiclub/EQC-BookingService/pkg/metrics"
	"github.com/equiclub/EQC-BookingService/pkg/simpletxmanager"
	"github.com/equiclub/EQC-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting EQC-BookingService...")
	log.Info("Configuration loaded from config.toml")

	policy := cfg.Policy.ToDomain()
	log.Info("Booking policy: max_spots=%d, debt_threshold=%.2f",
		policy.MaxSpotsPerSlot, policy.DebtBlockThreshold)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	migrator, err := app.NewMigrator(db, cfg.Database.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, version=%d", version)
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	mailer := mailerClient.NewClient(
		cfg.Mailer.Enabled,
		cfg.Mailer.APIKey,
		cfg.Mailer.FromEmail,
		cfg.Mailer.FromName,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, mailer_enabled=%v)",
		cfg.Catalog.URL, cfg.Catalog.Timeout, cfg.Mailer.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		lessonRepository      *lessonRepo.Repository
		bookingRepository     *bookingRepo.Repository
		paymentRepository     *paymentRepo.Repository
		blockedSlotRepository *blockedSlotRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		lessonRepository = lessonRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		blockedSlotRepository = blockedSlotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		lessonRepository = lessonRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		blockedSlotRepository = blockedSlotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		lessonRepository,
		txMgr,
		mailer,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		mailer,
		policy,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		lessonRepository,
		bookingRepository,
		blockedSlotRepository,
		policy,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		lessonRepository,
		bookingRepository,
		blockedSlotRepository,
		paymentRepository,
		catalogClient,
		txMgr,
		mailer,
		policy,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		lessonRepository,
		blockedSlotRepository,
		paymentRepository,
		catalogClient,
		policy,
		log,
	)

	// Запускаем фоновые задачи (если включены)
	if cfg.Jobs.Enabled {
		scheduler, err := jobs.NewScheduler(paymentSvc, cfg.Jobs.PenaltySweepSpec, cfg.Jobs.ReminderSpec, log)
		if err != nil {
			log.Fatal("Failed to init jobs scheduler: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("Background jobs scheduled (penalty_sweep=%q, reminders=%q)",
			cfg.Jobs.PenaltySweepSpec, cfg.Jobs.ReminderSpec)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getDebtStatus := getDebtStatusHandler.NewHandler(paymentSvc, log)
	getClientPayments := getClientPaymentsHandler.NewHandler(paymentSvc, log)
	reviewBooking := reviewBookingHandler.NewHandler(bookingSvc, log)
	markAttendance := markAttendanceHandler.NewHandler(bookingSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(scheduleSvc, log)
	createLesson := createLessonHandler.NewHandler(scheduleSvc, log)
	cancelLesson := cancelLessonHandler.NewHandler(scheduleSvc, log)
	blockSlot := blockSlotHandler.NewHandler(scheduleSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(scheduleSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	markPaymentPaid := markPaymentPaidHandler.NewHandler(paymentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// CLIENT ROUTES (требуют X-Client-Email header)
	// ============================================================

	client := api.PathPrefix("").Subrouter()
	client.Use(middleware.Auth)

	// Доступные слоты для записи
	client.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	client.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	client.HandleFunc("/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	client.HandleFunc("/bookings/code/{code}", getBooking.HandleByCode).Methods(http.MethodGet)
	client.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	client.HandleFunc("/bookings/{id}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Платежи ---
	client.HandleFunc("/payments", getClientPayments.Handle).Methods(http.MethodGet)
	client.HandleFunc("/debt-status", getDebtStatus.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Staff)

	// --- Рассмотрение бронирований и посещаемость ---
	admin.HandleFunc("/bookings/{id}/status", reviewBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/attendance", markAttendance.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	admin.HandleFunc("/schedule", getDaySchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/lessons", createLesson.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/lessons/{id}", cancelLesson.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/blocked-slots", blockSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-slots/{id}", unblockSlot.Handle).Methods(http.MethodDelete)

	// --- Платежи ---
	admin.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id}/paid", markPaymentPaid.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
