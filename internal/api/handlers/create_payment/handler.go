package create_payment

import (
	"errors"
	"net/http"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/service/payments"
	"github.com/equiclub/EQC-BookingService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные платежа"
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

// Handle POST /api/v1/admin/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.StaffIDFromContext(r.Context())

	var req models.CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreatePayment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /admin/payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/payments - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/payments - Created payment id=%d by staff=%d", result.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
