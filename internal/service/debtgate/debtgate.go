// Package debtgate долговой гейт: чистая функция над платежами клиента,
// решающая, допускается ли клиент к бронированию
package debtgate

import (
	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// Ограничения, действующие для заблокированного клиента
// Список показывается клиенту вместе с суммой долга
var blockedRestrictions = []string{
	"запись на новые занятия",
	"запись в недельные планы",
	"заявки на участие в соревнованиях",
}

// Result результат проверки долгового гейта
type Result struct {
	Blocked      bool
	Outstanding  float64
	Restrictions []string
}

// Evaluate суммирует долг по неоплаченным платежам и сравнивает с порогом
// Сравнение строгое: долг ровно в размере порога клиента НЕ блокирует
func Evaluate(payments []*domain.Payment, policy domain.BookingPolicy) Result {
	outstanding := domain.OutstandingTotal(payments)

	if outstanding > policy.DebtBlockThreshold {
		restrictions := make([]string, len(blockedRestrictions))
		copy(restrictions, blockedRestrictions)

		return Result{
			Blocked:      true,
			Outstanding:  outstanding,
			Restrictions: restrictions,
		}
	}

	return Result{
		Blocked:     false,
		Outstanding: outstanding,
	}
}
