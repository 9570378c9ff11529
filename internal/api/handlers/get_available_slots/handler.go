package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/domain"
	getAvailableSlots "github.com/equiclub/EQC-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID   = "некорректный параметр serviceId"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "дата в прошлом"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgCatalogUnavailable = "каталог услуг временно недоступен"
	msgClientBlocked      = "запись недоступна из-за задолженности"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?serviceId={id}&date={date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, _ := middleware.ClientEmailFromContext(r.Context())

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /slots - Invalid serviceId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ClientEmail: clientEmail,
		ServiceID:   serviceID,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Date in past: client=%s, date=%s", clientEmail, date.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /slots - Service inactive: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrCatalogUnavailable):
			h.logger.Error("GET /slots - Catalog unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgCatalogUnavailable)

		case errors.Is(err, getAvailableSlots.ErrClientBlocked):
			h.logger.Warn("GET /slots - Client blocked: client=%s", clientEmail)
			handlers.RespondForbidden(w, msgClientBlocked)

		default:
			h.logger.Error("GET /slots - Failed: client=%s, service_id=%d, error=%v", clientEmail, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - %d slots for service_id=%d, date=%s",
		len(result.Slots), serviceID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
