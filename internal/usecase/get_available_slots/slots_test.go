package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiclub/EQC-BookingService/internal/domain"
	"github.com/equiclub/EQC-BookingService/pkg/types"
)

var (
	monday   = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
)

func slotTimes(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func findSlot(t *testing.T, slots []Slot, start types.TimeString) Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	slots := availableSlots(monday, nil, nil, 30, policy)
	require.Len(t, slots, 16)

	for _, slot := range slots {
		assert.Equal(t, policy.MaxSpotsPerSlot, slot.AvailableSpots)
		assert.Equal(t, policy.MaxSpotsPerSlot, slot.TotalSpots)
		assert.Equal(t, 30, slot.DurationMinutes)
	}

	assert.Len(t, availableSlots(saturday, nil, nil, 30, policy), 12)
}

func TestAvailableSlots_Sunday(t *testing.T) {
	assert.Empty(t, availableSlots(sunday, nil, nil, 30, domain.DefaultBookingPolicy()))
}

func TestAvailableSlots_DayBlocked(t *testing.T) {
	blocks := []*domain.BlockedSlot{{Date: monday, TimeSlot: nil}}
	assert.Empty(t, availableSlots(monday, nil, blocks, 30, domain.DefaultBookingPolicy()))
}

func TestAvailableSlots_SlotBlocked(t *testing.T) {
	blocked := types.TimeString("10:00")
	blocks := []*domain.BlockedSlot{{Date: monday, TimeSlot: &blocked}}

	slots := availableSlots(monday, nil, blocks, 30, domain.DefaultBookingPolicy())
	require.Len(t, slots, 15)
	assert.NotContains(t, slotTimes(slots), blocked)
}

func TestAvailableSlots_OccupancySharedAcrossServices(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	// Две услуги в одном слоте: потолок общий
	lessons := []*domain.Lesson{
		{ID: 1, ServiceID: 10, StartTime: "09:00", BookedSpots: 4, Status: domain.LessonStatusScheduled},
		{ID: 2, ServiceID: 20, StartTime: "09:00", BookedSpots: 2, Status: domain.LessonStatusScheduled},
		{ID: 3, ServiceID: 10, StartTime: "09:30", BookedSpots: 5, Status: domain.LessonStatusScheduled},
	}

	slots := availableSlots(monday, lessons, nil, 30, policy)

	assert.NotContains(t, slotTimes(slots), types.TimeString("09:00"))
	assert.Equal(t, 1, findSlot(t, slots, "09:30").AvailableSpots)
	assert.Equal(t, 6, findSlot(t, slots, "10:00").AvailableSpots)
}

func TestAvailableSlots_ChainedDuration(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	lessons := []*domain.Lesson{
		{ID: 1, ServiceID: 10, StartTime: "09:30", BookedSpots: 6, Status: domain.LessonStatusScheduled},
		{ID: 2, ServiceID: 10, StartTime: "11:00", BookedSpots: 4, Status: domain.LessonStatusScheduled},
	}

	slots := availableSlots(monday, lessons, nil, 60, policy)
	times := slotTimes(slots)

	// 09:00 недоступен: сцепленный 09:30 полон
	assert.NotContains(t, times, types.TimeString("09:00"))
	// 09:30 недоступен сам по себе
	assert.NotContains(t, times, types.TimeString("09:30"))
	// 10:30 доступен, но запас ограничен сцепленным 11:00
	assert.Equal(t, 2, findSlot(t, slots, "10:30").AvailableSpots)
	// 12:30 сцепляется через перерыв с 14:30
	assert.Contains(t, times, types.TimeString("12:30"))
}

func TestAvailableSlots_ChainedSlotBlocked(t *testing.T) {
	blocked := types.TimeString("09:30")
	blocks := []*domain.BlockedSlot{{Date: monday, TimeSlot: &blocked}}

	slots := availableSlots(monday, nil, blocks, 60, domain.DefaultBookingPolicy())
	times := slotTimes(slots)

	// Часовая услуга не может начаться перед заблокированным слотом
	assert.NotContains(t, times, types.TimeString("09:00"))
	assert.NotContains(t, times, types.TimeString("09:30"))
	assert.Contains(t, times, types.TimeString("10:00"))
}

func TestAvailableSlots_LastSlotNoTrailingCheck(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	// Последний слот дня предлагается для часовой услуги без проверки хвоста
	slots := availableSlots(monday, nil, nil, 60, policy)
	last := findSlot(t, slots, "18:00")
	assert.Equal(t, policy.MaxSpotsPerSlot, last.AvailableSpots)

	slots = availableSlots(saturday, nil, nil, 60, policy)
	assert.Contains(t, slotTimes(slots), types.TimeString("16:00"))
}

func TestAvailableSlots_OrderedByGrid(t *testing.T) {
	slots := availableSlots(monday, nil, nil, 30, domain.DefaultBookingPolicy())
	grid := domain.SlotsForDate(monday)
	require.Len(t, slots, len(grid))
	for i, slot := range slots {
		assert.Equal(t, grid[i], slot.StartTime)
	}
}
