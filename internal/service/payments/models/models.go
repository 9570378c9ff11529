package models

import (
	"time"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// Request модели

// CreatePaymentRequest запрос на создание месячного платежа клиента
type CreatePaymentRequest struct {
	ClientEmail string  `json:"clientEmail"`
	Month       string  `json:"month"` // "2026-03"
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"` // "2026-03-08"
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID          int64   `json:"id"`
	ClientEmail string  `json:"clientEmail"`
	Month       string  `json:"month"`
	Amount      float64 `json:"amount"`
	Penalty     float64 `json:"penalty"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate"`
	PaidAt      *string `json:"paidAt,omitempty"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// DebtStatusResponse ответ о долговом статусе клиента
type DebtStatusResponse struct {
	ClientEmail  string   `json:"clientEmail"`
	Blocked      bool     `json:"blocked"`
	Outstanding  float64  `json:"outstanding"`
	Threshold    float64  `json:"threshold"`
	Restrictions []string `json:"restrictions,omitempty"`
}

// FromDomainPayment конвертирует domain.Payment в response
func FromDomainPayment(payment *domain.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:          payment.ID,
		ClientEmail: payment.ClientEmail,
		Month:       payment.Month,
		Amount:      payment.Amount,
		Penalty:     payment.Penalty,
		Total:       payment.Total,
		Status:      string(payment.Status),
		DueDate:     payment.DueDate.Format(domain.DateFormat),
	}

	if payment.PaidAt != nil {
		paidAt := payment.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}

	return resp
}

// FromDomainPaymentList конвертирует список платежей в response
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	result := make([]*PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		result = append(result, FromDomainPayment(payment))
	}

	return &PaymentListResponse{
		Payments: result,
		Total:    len(result),
	}
}
