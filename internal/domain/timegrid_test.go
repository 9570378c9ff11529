package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiclub/EQC-BookingService/pkg/types"
)

var (
	monday   = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
)

func TestSlotsForDate(t *testing.T) {
	cases := []struct {
		name      string
		date      time.Time
		wantCount int
		wantFirst types.TimeString
		wantLast  types.TimeString
	}{
		{
			name:      "будний день - 16 слотов",
			date:      monday,
			wantCount: 16,
			wantFirst: "09:00",
			wantLast:  "18:00",
		},
		{
			name:      "суббота - 12 слотов",
			date:      saturday,
			wantCount: 12,
			wantFirst: "09:00",
			wantLast:  "16:00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := SlotsForDate(tc.date)
			require.Len(t, grid, tc.wantCount)
			assert.Equal(t, tc.wantFirst, grid[0])
			assert.Equal(t, tc.wantLast, grid[len(grid)-1])
		})
	}
}

func TestSlotsForDate_Sunday(t *testing.T) {
	assert.Nil(t, SlotsForDate(sunday))
	assert.False(t, IsWorkingDay(sunday))
	assert.True(t, IsWorkingDay(monday))
	assert.True(t, IsWorkingDay(saturday))
}

func TestSlotsForDate_ExcludesLunchBreak(t *testing.T) {
	for _, date := range []time.Time{monday, saturday} {
		grid := SlotsForDate(date)
		for _, slot := range grid {
			assert.NotEqual(t, types.TimeString("13:00"), slot)
			assert.NotEqual(t, types.TimeString("13:30"), slot)
			assert.NotEqual(t, types.TimeString("14:00"), slot)
		}
	}
}

func TestSlotsForDate_ReturnsCopy(t *testing.T) {
	grid := SlotsForDate(monday)
	grid[0] = "00:00"
	assert.Equal(t, types.TimeString("09:00"), SlotsForDate(monday)[0])
}

func TestIsGridSlot(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		slot types.TimeString
		want bool
	}{
		{name: "первый слот будней", date: monday, slot: "09:00", want: true},
		{name: "последний слот будней", date: monday, slot: "18:00", want: true},
		{name: "обеденный перерыв", date: monday, slot: "13:00", want: false},
		{name: "не кратно 30 минутам", date: monday, slot: "09:15", want: false},
		{name: "вечер субботы вне сетки", date: saturday, slot: "17:00", want: false},
		{name: "последний слот субботы", date: saturday, slot: "16:00", want: true},
		{name: "воскресенье", date: sunday, slot: "09:00", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsGridSlot(tc.date, tc.slot))
		})
	}
}

func TestNextGridSlot(t *testing.T) {
	cases := []struct {
		name     string
		date     time.Time
		slot     types.TimeString
		wantNext types.TimeString
		wantOK   bool
	}{
		{name: "обычный шаг", date: monday, slot: "09:00", wantNext: "09:30", wantOK: true},
		// Следующий слот берется по индексу сетки: за 12:30 идет 14:30
		{name: "через обеденный перерыв", date: monday, slot: "12:30", wantNext: "14:30", wantOK: true},
		{name: "последний слот будней", date: monday, slot: "18:00", wantOK: false},
		{name: "последний слот субботы", date: saturday, slot: "16:00", wantOK: false},
		{name: "слот вне сетки", date: monday, slot: "13:00", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := NextGridSlot(tc.date, tc.slot)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantNext, next)
			}
		})
	}
}
