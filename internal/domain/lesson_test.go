package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumOccupancy(t *testing.T) {
	lessons := []*Lesson{
		{ID: 1, ServiceID: 10, StartTime: "09:00", BookedSpots: 2, Status: LessonStatusScheduled},
		{ID: 2, ServiceID: 20, StartTime: "09:00", BookedSpots: 3, Status: LessonStatusScheduled},
		{ID: 3, ServiceID: 10, StartTime: "09:30", BookedSpots: 4, Status: LessonStatusScheduled},
		{ID: 4, ServiceID: 30, StartTime: "09:00", BookedSpots: 5, Status: LessonStatusCancelled},
	}

	// Занятость суммируется по всем услугам слота, отмененные не считаются
	assert.Equal(t, 5, SumOccupancy(lessons, "09:00"))
	assert.Equal(t, 4, SumOccupancy(lessons, "09:30"))
	assert.Equal(t, 0, SumOccupancy(lessons, "10:00"))
}

func TestLesson_FreeSpots(t *testing.T) {
	lesson := &Lesson{MaxSpots: 6, BookedSpots: 4}
	assert.Equal(t, 2, lesson.FreeSpots())
	assert.False(t, lesson.IsFull())

	lesson.BookedSpots = 6
	assert.Equal(t, 0, lesson.FreeSpots())
	assert.True(t, lesson.IsFull())
}

func TestBooking_TakesChainedSlot(t *testing.T) {
	assert.False(t, (&Booking{DurationMinutes: 30}).TakesChainedSlot())
	assert.True(t, (&Booking{DurationMinutes: 60}).TakesChainedSlot())
}

func TestPayment_Outstanding(t *testing.T) {
	cases := []struct {
		name    string
		payment Payment
		want    float64
	}{
		{
			name:    "оплаченный платеж без долга",
			payment: Payment{Amount: 50, Penalty: 5, Total: 55, Status: PaymentStatusPaid},
			want:    0,
		},
		{
			name:    "итог заполнен",
			payment: Payment{Amount: 50, Penalty: 5, Total: 55, Status: PaymentStatusOverdue},
			want:    55,
		},
		{
			name:    "итог не заполнен - amount + penalty",
			payment: Payment{Amount: 50, Penalty: 15, Status: PaymentStatusOverdue},
			want:    65,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.payment.Outstanding())
		})
	}
}
