package get_available_slots

import (
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// availableSlots вычисляет доступные слоты даты для услуги заданной длительности
//
// Правила:
//  1. Сетка слотов определяется днем недели (будни/суббота), воскресенье - пусто.
//  2. Блокировка дня целиком (time_slot = NULL) дает пустой результат независимо
//     от занятости.
//  3. Слот с точечной блокировкой исключается.
//  4. Занятость суммируется по ВСЕМ занятиям на date+start_time - услуги делят
//     общий потолок вместимости, а не каждая свой.
//  5. Для часовых услуг следующий слот сетки тоже должен иметь запас (и не быть
//     заблокирован). У последнего слота сетки следующего нет - он предлагается
//     без проверки хвоста.
//
// Результат отсортирован в порядке сетки
func availableSlots(
	date time.Time,
	lessons []*domain.Lesson,
	blocks []*domain.BlockedSlot,
	durationMinutes int,
	policy domain.BookingPolicy,
) []Slot {
	grid := domain.SlotsForDate(date)
	if len(grid) == 0 {
		return []Slot{}
	}

	if domain.DayIsBlocked(blocks) {
		return []Slot{}
	}

	chained := durationMinutes > domain.SlotDurationMinutes
	result := make([]Slot, 0, len(grid))

	for _, start := range grid {
		if domain.SlotIsBlocked(blocks, start) {
			continue
		}

		occupied := domain.SumOccupancy(lessons, start)
		if occupied >= policy.MaxSpotsPerSlot {
			continue
		}

		available := policy.MaxSpotsPerSlot - occupied

		if chained {
			next, ok := domain.NextGridSlot(date, start)
			if ok {
				if domain.SlotIsBlocked(blocks, next) {
					continue
				}

				nextOccupied := domain.SumOccupancy(lessons, next)
				if nextOccupied >= policy.MaxSpotsPerSlot {
					continue
				}

				if nextAvailable := policy.MaxSpotsPerSlot - nextOccupied; nextAvailable < available {
					available = nextAvailable
				}
			}
			// Последний слот сетки: хвостовой проверки нет, слот предлагается
		}

		result = append(result, Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			AvailableSpots:  available,
			TotalSpots:      policy.MaxSpotsPerSlot,
		})
	}

	return result
}
