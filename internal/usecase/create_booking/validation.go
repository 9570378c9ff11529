package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientEmail) == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}

	if !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: clientEmail is not a valid email", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	for i, sel := range req.Slots {
		if sel.Date.IsZero() {
			return fmt.Errorf("%w: slots[%d].date is required", ErrInvalidInput, i)
		}
		if err := sel.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: slots[%d].startTime: %v", ErrInvalidInput, i, err)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateService проверяет услугу и соответствие числа слотов ее типу
//
// Недельный план бронируется целиком: ровно WeeklyFrequency занятий за
// один запрос. Разовая услуга - ровно один слот
func validateService(service *catalogservice.Service, slotsCount int) error {
	if !service.Active {
		return ErrServiceInactive
	}

	if service.DurationMinutes != domain.SlotDurationMinutes &&
		service.DurationMinutes != domain.MaxLessonDurationMinutes {
		return fmt.Errorf("%w: unsupported service duration %d", ErrInvalidInput, service.DurationMinutes)
	}

	if service.IsWeeklyPlan() {
		if slotsCount != service.WeeklyFrequency {
			return fmt.Errorf("%w: weekly plan requires exactly %d slots, got %d",
				ErrInvalidInput, service.WeeklyFrequency, slotsCount)
		}
		return nil
	}

	if slotsCount != 1 {
		return fmt.Errorf("%w: single booking requires exactly 1 slot, got %d", ErrInvalidInput, slotsCount)
	}

	return nil
}

// validateSelection проверяет дату и попадание времени в сетку расписания
func validateSelection(sel SlotSelection, now time.Time) error {
	if isDateInPast(sel.Date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, sel.Date.Format(domain.DateFormat))
	}

	if !domain.IsWorkingDay(sel.Date) {
		return fmt.Errorf("%w: %s is a day off", ErrInvalidDate, sel.Date.Format(domain.DateFormat))
	}

	if !domain.IsGridSlot(sel.Date, sel.StartTime) {
		return fmt.Errorf("%w: %s is not a valid start time for %s",
			ErrSlotNotInGrid, sel.StartTime, sel.Date.Format(domain.DateFormat))
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
