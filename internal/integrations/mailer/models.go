package mailer

import "time"

// BookingEmailData данные для письма о бронировании
type BookingEmailData struct {
	ClientEmail string
	ClientName  string
	BookingCode string
	ServiceName string
	Date        time.Time
	StartTime   string
	Reason      string // Причина отклонения (только для отказа)
}

// PaymentReminderData данные для напоминания об оплате
type PaymentReminderData struct {
	ClientEmail string
	Month       string
	Amount      float64
	Penalty     float64
	Outstanding float64
	DueDate     time.Time
}
