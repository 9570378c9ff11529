package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/service/bookings"
	"github.com/equiclub/EQC-BookingService/internal/service/bookings/models"
)

const msgInvalidStatus = "некорректный статус бронирования"

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status={status}&includeInactive={bool}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, _ := middleware.ClientEmailFromContext(r.Context())

	req := &models.GetClientBookingsRequest{
		ClientEmail:     clientEmail,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid status: client=%s", clientEmail)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /bookings - Failed: client=%s, error=%v", clientEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Fetched %d bookings for client=%s", result.Total, clientEmail)
	handlers.RespondJSON(w, http.StatusOK, result)
}
