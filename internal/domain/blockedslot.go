package domain

import (
	"time"

	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// BlockedSlot админская блокировка доступности
// TimeSlot == nil означает блокировку всего дня
type BlockedSlot struct {
	ID       int64
	Date     time.Time
	TimeSlot *types.TimeString
	Reason   *string

	CreatedAt time.Time
}

// BlocksWholeDay returns true if the whole day is blocked
func (b *BlockedSlot) BlocksWholeDay() bool {
	return b.TimeSlot == nil
}

// BlocksSlot returns true if the given start time is blocked
func (b *BlockedSlot) BlocksSlot(slot types.TimeString) bool {
	if b.BlocksWholeDay() {
		return true
	}
	return *b.TimeSlot == slot
}

// DayIsBlocked проверяет, заблокирован ли день целиком
func DayIsBlocked(blocks []*BlockedSlot) bool {
	for _, b := range blocks {
		if b.BlocksWholeDay() {
			return true
		}
	}
	return false
}

// SlotIsBlocked проверяет, заблокирован ли конкретный слот
func SlotIsBlocked(blocks []*BlockedSlot, slot types.TimeString) bool {
	for _, b := range blocks {
		if b.BlocksSlot(slot) {
			return true
		}
	}
	return false
}
