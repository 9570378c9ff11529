package domain

import (
	"time"

	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// Сетка слотов фиксирована расписанием центра:
// будни - 09:00-12:30 и 14:30-18:00, суббота - 09:00-12:30 и 14:30-16:00,
// воскресенье - выходной. Шаг всегда 30 минут, обеденный перерыв не бронируется.

var weekdaySlots = []types.TimeString{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	"14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30", "18:00",
}

var saturdaySlots = []types.TimeString{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	"14:30", "15:00", "15:30", "16:00",
}

// SlotsForDate возвращает сетку слотов для даты
// Для воскресенья возвращает nil - центр закрыт
func SlotsForDate(date time.Time) []types.TimeString {
	var grid []types.TimeString

	switch date.Weekday() {
	case time.Sunday:
		return nil
	case time.Saturday:
		grid = saturdaySlots
	default:
		grid = weekdaySlots
	}

	// Возвращаем копию, чтобы вызывающий не мог испортить сетку
	out := make([]types.TimeString, len(grid))
	copy(out, grid)
	return out
}

// IsGridSlot проверяет, что слот присутствует в сетке даты
func IsGridSlot(date time.Time, slot types.TimeString) bool {
	for _, s := range SlotsForDate(date) {
		if s == slot {
			return true
		}
	}
	return false
}

// NextGridSlot возвращает следующий слот сетки после slot
// Для последнего слота сетки (и для слота вне сетки) возвращает false:
// часовое занятие в последнем слоте допускается без сцепленного слота
func NextGridSlot(date time.Time, slot types.TimeString) (types.TimeString, bool) {
	grid := SlotsForDate(date)
	for i, s := range grid {
		if s == slot {
			if i+1 < len(grid) {
				return grid[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// IsWorkingDay возвращает true, если в этот день центр открыт
func IsWorkingDay(date time.Time) bool {
	return date.Weekday() != time.Sunday
}
