package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "доступ к чужому бронированию запрещен"
)

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

// Handle GET /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, _ := middleware.ClientEmailFromContext(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetByID(r.Context(), bookingID, clientEmail)
	if err != nil {
		h.respondServiceError(w, err, clientEmail)
		return
	}

	h.logger.Info("GET /bookings/{id} - Fetched booking id=%d for client=%s", bookingID, clientEmail)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByCode GET /api/v1/bookings/code/{code}
func (h *Handler) HandleByCode(w http.ResponseWriter, r *http.Request) {
	clientEmail, _ := middleware.ClientEmailFromContext(r.Context())
	code := mux.Vars(r)["code"]

	result, err := h.service.GetByCode(r.Context(), code, clientEmail)
	if err != nil {
		h.respondServiceError(w, err, clientEmail)
		return
	}

	h.logger.Info("GET /bookings/code/{code} - Fetched booking code=%s for client=%s", code, clientEmail)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, clientEmail string) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET booking - Not found: client=%s", clientEmail)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET booking - Access denied: client=%s", clientEmail)
		handlers.RespondForbidden(w, msgAccessDenied)

	default:
		h.logger.Error("GET booking - Failed: client=%s, error=%v", clientEmail, err)
		handlers.RespondInternalError(w)
	}
}
