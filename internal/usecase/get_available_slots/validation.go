package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientEmail) == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}

	if !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: clientEmail is not a valid email", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateService проверяет, что услуга активна и имеет поддерживаемую длительность
func validateService(duration int, active bool) error {
	if !active {
		return ErrServiceInactive
	}

	if duration != domain.SlotDurationMinutes && duration != domain.MaxLessonDurationMinutes {
		return fmt.Errorf("%w: unsupported service duration %d", ErrInvalidInput, duration)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
