package mark_payment_paid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/service/payments"
)

const (
	msgInvalidPaymentID = "некорректный ID платежа"
	msgPaymentNotFound  = "платеж не найден"
	msgAlreadyPaid      = "платеж уже оплачен"
)

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/payments/{id}/paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.StaffIDFromContext(r.Context())

	paymentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || paymentID <= 0 {
		h.logger.Warn("POST /admin/payments/{id}/paid - Invalid payment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	if err := h.service.MarkPaid(r.Context(), paymentID); err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /admin/payments/{id}/paid - Not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrAlreadyPaid):
			h.logger.Warn("POST /admin/payments/{id}/paid - Already paid: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		default:
			h.logger.Error("POST /admin/payments/{id}/paid - Failed: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/payments/{id}/paid - Payment id=%d marked paid by staff=%d", paymentID, staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
