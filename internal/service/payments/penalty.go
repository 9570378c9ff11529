package payments

import (
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// penaltyFor вычисляет штраф и статус неоплаченного платежа за месяц month
// на момент asOf по штрафной лестнице:
//
//	по policy.PenaltyGraceDay включительно   - без штрафа
//	по policy.PenaltyTier1LastDay включительно - Tier1Amount
//	до конца месяца                          - Tier2Amount
//	после конца месяца                       - Tier2Amount, платеж блокируется
//	                                           (клиент теряет закрепленный слот)
//
// Чистая функция: время приходит параметром, решения воспроизводимы
func penaltyFor(month string, asOf time.Time, policy domain.BookingPolicy) (float64, domain.PaymentStatus, error) {
	monthStart, err := time.ParseInLocation(domain.MonthFormat, month, asOf.Location())
	if err != nil {
		return 0, "", err
	}

	// Платеж за будущий месяц штрафоваться не может
	if asOf.Before(monthStart) {
		return 0, domain.PaymentStatusPending, nil
	}

	monthEnd := monthStart.AddDate(0, 1, 0)
	if !asOf.Before(monthEnd) {
		return policy.PenaltyTier2Amount, domain.PaymentStatusBlocked, nil
	}

	day := asOf.Day()
	switch {
	case day <= policy.PenaltyGraceDay:
		return 0, domain.PaymentStatusPending, nil
	case day <= policy.PenaltyTier1LastDay:
		return policy.PenaltyTier1Amount, domain.PaymentStatusOverdue, nil
	default:
		return policy.PenaltyTier2Amount, domain.PaymentStatusOverdue, nil
	}
}
