package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	blockedRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/blockedslot"
	lessonRepo "github.com/equiclub/EQC-BookingService/internal/infra/storage/lesson"
	"github.com/equiclub/EQC-BookingService/internal/service/schedule/models"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// Service сервис расписания для персонала: дневная ведомость,
// ручное создание занятий и блокировки слотов
type Service struct {
	lessonRepo      LessonRepository
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	policy          domain.BookingPolicy
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	lessonRepo LessonRepository,
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		lessonRepo:      lessonRepo,
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		policy:          policy,
		logger:          logger,
	}
}

// GetDaySchedule собирает дневную ведомость: сетку слотов с занятиями,
// бронированиями и блокировками
func (s *Service) GetDaySchedule(ctx context.Context, date time.Time) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDaySchedule: date=%s", date.Format(domain.DateFormat))

	resp := &models.DayScheduleResponse{
		Date:       date.Format(domain.DateFormat),
		WorkingDay: domain.IsWorkingDay(date),
		Slots:      []*models.ScheduleSlotResponse{},
	}

	if !resp.WorkingDay {
		return resp, nil
	}

	blocks, err := s.blockedSlotRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	for _, block := range blocks {
		if block.BlocksWholeDay() {
			resp.DayBlocked = true
			resp.DayReason = block.Reason
			break
		}
	}

	lessons, err := s.lessonRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to get lessons: %v", err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	for _, start := range domain.SlotsForDate(date) {
		slot, err := s.buildSlot(ctx, start, lessons, blocks)
		if err != nil {
			return nil, err
		}
		resp.Slots = append(resp.Slots, slot)
	}

	s.logger.Info("GetDaySchedule: date=%s, %d slots", resp.Date, len(resp.Slots))
	return resp, nil
}

// CreateLesson создает пустое занятие вручную
// Используется персоналом для планирования занятий с инструктором заранее
func (s *Service) CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.LessonResponse, error) {
	s.logger.Info("CreateLesson: date=%s, startTime=%s, service=%d", req.Date, req.StartTime, req.ServiceID)

	date, startTime, err := s.parseSlot(req.Date, req.StartTime)
	if err != nil {
		s.logger.Warn("CreateLesson: validation failed: %v", err)
		return nil, err
	}

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	maxSpots := s.policy.MaxSpotsPerSlot
	if req.MaxSpots != nil {
		if *req.MaxSpots <= 0 || *req.MaxSpots > s.policy.MaxSpotsPerSlot {
			return nil, fmt.Errorf("%w: maxSpots must be between 1 and %d", ErrInvalidInput, s.policy.MaxSpotsPerSlot)
		}
		maxSpots = *req.MaxSpots
	}

	endTime, err := startTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	lesson, err := s.lessonRepo.Create(ctx, &domain.Lesson{
		ServiceID:    req.ServiceID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		MaxSpots:     maxSpots,
		BookedSpots:  0,
		InstructorID: req.InstructorID,
		Status:       domain.LessonStatusScheduled,
	})
	if err != nil {
		s.logger.Error("CreateLesson: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLesson - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLesson: created lesson id=%d", lesson.ID)
	return models.FromDomainLesson(lesson), nil
}

// CancelLesson отменяет занятие
// Занятость отмененного занятия перестает учитываться в потолке слота,
// его бронирования персонал разбирает отдельно через ведомость дня
func (s *Service) CancelLesson(ctx context.Context, lessonID int64) error {
	s.logger.Info("CancelLesson: lesson id=%d", lessonID)

	if err := s.lessonRepo.UpdateStatus(ctx, lessonID, domain.LessonStatusCancelled); err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("CancelLesson: lesson id=%d not found", lessonID)
			return ErrLessonNotFound
		}
		s.logger.Error("CancelLesson: repository error for lesson id=%d: %v", lessonID, err)
		return fmt.Errorf("%w: CancelLesson - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelLesson: cancelled lesson id=%d", lessonID)
	return nil
}

// BlockSlot блокирует слот или весь день (при пустом timeSlot)
func (s *Service) BlockSlot(ctx context.Context, req *models.BlockSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("BlockSlot: date=%s, timeSlot=%v", req.Date, req.TimeSlot)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	block := &domain.BlockedSlot{
		Date:   date,
		Reason: &req.Reason,
	}

	if req.TimeSlot != nil {
		slot, err := types.NewTimeStringFromString(*req.TimeSlot)
		if err != nil {
			return nil, fmt.Errorf("%w: timeSlot must be in HH:MM format", ErrInvalidInput)
		}
		if !domain.IsGridSlot(date, slot) {
			return nil, fmt.Errorf("%w: %s is not a grid slot for %s", ErrSlotNotInGrid, slot, req.Date)
		}
		block.TimeSlot = &slot
	}

	created, err := s.blockedSlotRepo.Create(ctx, block)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrAlreadyBlocked) {
			s.logger.Warn("BlockSlot: slot already blocked, date=%s, timeSlot=%v", req.Date, req.TimeSlot)
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("BlockSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlot: created block id=%d", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// UnblockSlot снимает блокировку
// Существующие бронирования слота не восстанавливаются автоматически
func (s *Service) UnblockSlot(ctx context.Context, blockID int64) error {
	s.logger.Info("UnblockSlot: block id=%d", blockID)

	if err := s.blockedSlotRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("UnblockSlot: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("UnblockSlot: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: UnblockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockSlot: removed block id=%d", blockID)
	return nil
}

// Вспомогательные методы

// buildSlot собирает один слот ведомости с занятиями и их бронированиями
func (s *Service) buildSlot(
	ctx context.Context,
	start types.TimeString,
	lessons []*domain.Lesson,
	blocks []*domain.BlockedSlot,
) (*models.ScheduleSlotResponse, error) {
	slot := &models.ScheduleSlotResponse{
		StartTime: start.String(),
		Occupied:  domain.SumOccupancy(lessons, start),
		Capacity:  s.policy.MaxSpotsPerSlot,
		Lessons:   []*models.ScheduleLessonResponse{},
	}

	for _, block := range blocks {
		if !block.BlocksWholeDay() && block.BlocksSlot(start) {
			slot.Blocked = true
			slot.BlockReason = block.Reason
			break
		}
	}

	for _, lesson := range lessons {
		if lesson.StartTime != start {
			continue
		}

		bookings, err := s.bookingRepo.GetByLessonID(ctx, lesson.ID)
		if err != nil {
			s.logger.Error("buildSlot: failed to get bookings for lesson id=%d: %v", lesson.ID, err)
			return nil, fmt.Errorf("%w: buildSlot - repository error: %v", ErrInternal, err)
		}

		lessonResp := &models.ScheduleLessonResponse{
			ID:           lesson.ID,
			ServiceID:    lesson.ServiceID,
			BookedSpots:  lesson.BookedSpots,
			MaxSpots:     lesson.MaxSpots,
			InstructorID: lesson.InstructorID,
			Status:       string(lesson.Status),
			Bookings:     []*models.ScheduleBookingResponse{},
		}
		for _, booking := range bookings {
			lessonResp.Bookings = append(lessonResp.Bookings, models.FromDomainScheduleBooking(booking))
		}

		slot.Lessons = append(slot.Lessons, lessonResp)
	}

	return slot, nil
}

// parseSlot разбирает дату и время слота с проверкой попадания в сетку
func (s *Service) parseSlot(dateStr, timeStr string) (time.Time, types.TimeString, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if !domain.IsGridSlot(date, startTime) {
		return time.Time{}, "", fmt.Errorf("%w: %s is not a grid slot for %s", ErrSlotNotInGrid, startTime, dateStr)
	}

	return date, startTime, nil
}
