package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

func TestPenaltyFor_Ladder(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name        string
		asOf        time.Time
		wantPenalty float64
		wantStatus  domain.PaymentStatus
	}{
		{name: "первый день месяца", asOf: day(1), wantPenalty: 0, wantStatus: domain.PaymentStatusPending},
		{name: "последний день без штрафа", asOf: day(8), wantPenalty: 0, wantStatus: domain.PaymentStatusPending},
		{name: "первый день первой ступени", asOf: day(9), wantPenalty: 5, wantStatus: domain.PaymentStatusOverdue},
		{name: "последний день первой ступени", asOf: day(15), wantPenalty: 5, wantStatus: domain.PaymentStatusOverdue},
		{name: "первый день второй ступени", asOf: day(16), wantPenalty: 15, wantStatus: domain.PaymentStatusOverdue},
		{name: "последний день месяца", asOf: day(31), wantPenalty: 15, wantStatus: domain.PaymentStatusOverdue},
		{
			name:        "месяц истек - платеж блокируется",
			asOf:        time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			wantPenalty: 15,
			wantStatus:  domain.PaymentStatusBlocked,
		},
		{
			name:        "будущий месяц без штрафа",
			asOf:        time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC),
			wantPenalty: 0,
			wantStatus:  domain.PaymentStatusPending,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			penalty, status, err := penaltyFor("2026-03", tc.asOf, policy)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPenalty, penalty)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestPenaltyFor_InvalidMonth(t *testing.T) {
	_, _, err := penaltyFor("march-2026", time.Now(), domain.DefaultBookingPolicy())
	assert.Error(t, err)
}
