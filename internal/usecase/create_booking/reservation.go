package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
	lessonStorage "github.com/equiclub/EQC-BookingService/internal/infra/storage/lesson"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// reserveSelection занимает место в выбранном слоте (и в сцепленном для
// часовых услуг) и возвращает занятие, на которое ссылается бронирование.
//
// Вызывается ТОЛЬКО внутри сериализуемой транзакции: чтение занятости дня
// идет с FOR UPDATE, конкурентные бронирования одного слота не могут оба
// пройти проверку потолка
func (uc *UseCase) reserveSelection(
	ctx context.Context,
	sel SlotSelection,
	service *catalogservice.Service,
) (*domain.Lesson, error) {
	blocks, err := uc.blockedSlotRepo.GetByDate(ctx, sel.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	if domain.DayIsBlocked(blocks) {
		return nil, fmt.Errorf("%w: day %s is blocked", ErrSlotBlocked, sel.Date.Format(domain.DateFormat))
	}

	if domain.SlotIsBlocked(blocks, sel.StartTime) {
		return nil, fmt.Errorf("%w: slot %s %s is blocked", ErrSlotBlocked,
			sel.Date.Format(domain.DateFormat), sel.StartTime)
	}

	chainedStart, hasChained := uc.chainedSlot(sel, service)
	if hasChained && domain.SlotIsBlocked(blocks, chainedStart) {
		return nil, fmt.Errorf("%w: chained slot %s %s is blocked", ErrSlotBlocked,
			sel.Date.Format(domain.DateFormat), chainedStart)
	}

	lessons, err := uc.lessonRepo.GetByDate(ctx, sel.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
	}

	// Потолок общий для всех услуг: суммируем занятость всех занятий слота
	if err := uc.checkCeiling(lessons, sel.Date, sel.StartTime); err != nil {
		return nil, err
	}
	if hasChained {
		if err := uc.checkCeiling(lessons, sel.Date, chainedStart); err != nil {
			return nil, err
		}
	}

	lesson, err := uc.takeSpot(ctx, sel.Date, sel.StartTime, service.ID)
	if err != nil {
		return nil, err
	}

	if hasChained {
		if _, err := uc.takeSpot(ctx, sel.Date, chainedStart, service.ID); err != nil {
			return nil, err
		}
	}

	return lesson, nil
}

// chainedSlot возвращает следующий слот сетки для часовой услуги.
// У последнего слота дня следующего нет - услуга занимает только его
func (uc *UseCase) chainedSlot(sel SlotSelection, service *catalogservice.Service) (types.TimeString, bool) {
	if !service.TakesChainedSlot() {
		return "", false
	}
	return domain.NextGridSlot(sel.Date, sel.StartTime)
}

// checkCeiling проверяет, что суммарная занятость слота ниже потолка
func (uc *UseCase) checkCeiling(lessons []*domain.Lesson, date time.Time, start types.TimeString) error {
	if domain.SumOccupancy(lessons, start) >= uc.policy.MaxSpotsPerSlot {
		return fmt.Errorf("%w: slot %s %s is full", ErrCapacityExceeded,
			date.Format(domain.DateFormat), start)
	}
	return nil
}

// takeSpot занимает одно место в занятии услуги на date+start.
// Занятие создается лениво при первом бронировании слота
func (uc *UseCase) takeSpot(ctx context.Context, date time.Time, start types.TimeString, serviceID int64) (*domain.Lesson, error) {
	lesson, err := uc.lessonRepo.GetBySlot(ctx, date, start, serviceID)
	if err != nil {
		if !errors.Is(err, lessonStorage.ErrLessonNotFound) {
			return nil, fmt.Errorf("%w: failed to get lesson: %v", ErrInternal, err)
		}
		return uc.createLesson(ctx, date, start, serviceID)
	}

	if err := uc.lessonRepo.IncrementBookedSpots(ctx, lesson.ID); err != nil {
		if errors.Is(err, lessonStorage.ErrCapacityExceeded) {
			return nil, fmt.Errorf("%w: slot %s %s is full", ErrCapacityExceeded,
				date.Format(domain.DateFormat), start)
		}
		return nil, fmt.Errorf("%w: failed to increment booked spots: %v", ErrInternal, err)
	}

	lesson.BookedSpots++
	return lesson, nil
}

// createLesson лениво создает занятие с первым занятым местом
func (uc *UseCase) createLesson(ctx context.Context, date time.Time, start types.TimeString, serviceID int64) (*domain.Lesson, error) {
	endTime, err := start.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	lesson, err := uc.lessonRepo.Create(ctx, &domain.Lesson{
		ServiceID:   serviceID,
		Date:        date,
		StartTime:   start,
		EndTime:     endTime,
		MaxSpots:    uc.policy.MaxSpotsPerSlot,
		BookedSpots: 1,
		Status:      domain.LessonStatusScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create lesson: %v", ErrInternal, err)
	}

	return lesson, nil
}
