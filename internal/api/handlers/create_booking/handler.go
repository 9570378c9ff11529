package create_booking

import (
	"errors"
	"net/http"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	createBooking "github.com/equiclub/EQC-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgCatalogUnavailable = "каталог услуг временно недоступен"
	msgClientBlocked      = "запись недоступна из-за задолженности"
	msgInvalidDate        = "некорректная дата занятия"
	msgSlotNotInGrid      = "время не попадает в сетку расписания"
	msgSlotBlocked        = "выбранный слот заблокирован"
	msgSlotFull           = "в выбранном слоте нет свободных мест"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, _ := middleware.ClientEmailFromContext(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientEmail)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client=%s, error=%v", clientEmail, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrCatalogUnavailable):
			h.logger.Error("POST /bookings - Catalog unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgCatalogUnavailable)

		case errors.Is(err, createBooking.ErrClientBlocked):
			h.logger.Warn("POST /bookings - Client blocked: client=%s", clientEmail)
			handlers.RespondForbidden(w, msgClientBlocked)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: client=%s, error=%v", clientEmail, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrSlotNotInGrid):
			h.logger.Warn("POST /bookings - Slot not in grid: client=%s, error=%v", clientEmail, err)
			handlers.RespondBadRequest(w, msgSlotNotInGrid)

		case errors.Is(err, createBooking.ErrSlotBlocked):
			h.logger.Warn("POST /bookings - Slot blocked: client=%s, error=%v", clientEmail, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: client=%s, error=%v", clientEmail, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client=%s, service_id=%d, error=%v",
				clientEmail, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Created %d bookings: client=%s, service_id=%d",
		len(result.Bookings), clientEmail, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
