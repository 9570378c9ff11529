package domain

import "time"

// PaymentStatus represents the status of a monthly payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
	// PaymentStatusBlocked платеж просрочен за пределы месяца - слот клиента теряется
	PaymentStatusBlocked PaymentStatus = "blocked"
)

// Payment represents one monthly ledger entry of a client
// Клиент идентифицируется email-ом: платформа не выдает числовых ID клиентов
type Payment struct {
	ID          int64
	ClientEmail string
	Month       string // YYYY-MM
	Amount      float64
	Penalty     float64
	Total       float64
	Status      PaymentStatus
	DueDate     time.Time
	PaidAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid returns true if the payment has been settled
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// Outstanding возвращает сумму долга по платежу
// Если total не заполнен, долг считается как amount + penalty
func (p *Payment) Outstanding() float64 {
	if p.IsPaid() {
		return 0
	}
	if p.Total > 0 {
		return p.Total
	}
	return p.Amount + p.Penalty
}

// OutstandingTotal суммирует долг по всем неоплаченным платежам
func OutstandingTotal(payments []*Payment) float64 {
	total := 0.0
	for _, p := range payments {
		total += p.Outstanding()
	}
	return total
}
