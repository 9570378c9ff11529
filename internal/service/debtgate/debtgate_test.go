package debtgate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

func TestEvaluate_ThresholdIsStrict(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	cases := []struct {
		name        string
		payments    []*domain.Payment
		wantBlocked bool
		wantDebt    float64
	}{
		{
			name:        "без платежей",
			payments:    nil,
			wantBlocked: false,
			wantDebt:    0,
		},
		{
			name: "долг ровно на пороге не блокирует",
			payments: []*domain.Payment{
				{Amount: 30.00, Total: 30.00, Status: domain.PaymentStatusOverdue},
			},
			wantBlocked: false,
			wantDebt:    30.00,
		},
		{
			name: "долг выше порога блокирует",
			payments: []*domain.Payment{
				{Amount: 30.01, Total: 30.01, Status: domain.PaymentStatusOverdue},
			},
			wantBlocked: true,
			wantDebt:    30.01,
		},
		{
			name: "долг суммируется по месяцам",
			payments: []*domain.Payment{
				{Amount: 20, Total: 20, Status: domain.PaymentStatusPending},
				{Amount: 15, Total: 15, Status: domain.PaymentStatusOverdue},
			},
			wantBlocked: true,
			wantDebt:    35,
		},
		{
			name: "оплаченные платежи не считаются",
			payments: []*domain.Payment{
				{Amount: 100, Total: 100, Status: domain.PaymentStatusPaid},
				{Amount: 10, Total: 10, Status: domain.PaymentStatusPending},
			},
			wantBlocked: false,
			wantDebt:    10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Evaluate(tc.payments, policy)
			assert.Equal(t, tc.wantBlocked, result.Blocked)
			assert.InDelta(t, tc.wantDebt, result.Outstanding, 0.001)
			if tc.wantBlocked {
				assert.NotEmpty(t, result.Restrictions)
			} else {
				assert.Empty(t, result.Restrictions)
			}
		})
	}
}

func TestEvaluate_ConfiguredThreshold(t *testing.T) {
	policy := domain.DefaultBookingPolicy()
	policy.DebtBlockThreshold = 50

	payments := []*domain.Payment{
		{Amount: 40, Total: 40, Status: domain.PaymentStatusOverdue},
	}

	assert.False(t, Evaluate(payments, policy).Blocked)

	payments = append(payments, &domain.Payment{Amount: 11, Total: 11, Status: domain.PaymentStatusPending})
	assert.True(t, Evaluate(payments, policy).Blocked)
}
