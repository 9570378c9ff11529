package block_slot

import (
	"errors"
	"net/http"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/service/schedule"
	"github.com/equiclub/EQC-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные блокировки"
	msgSlotNotInGrid      = "время не попадает в сетку расписания"
	msgAlreadyBlocked     = "слот уже заблокирован"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.StaffIDFromContext(r.Context())

	var req models.BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BlockSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrSlotNotInGrid):
			h.logger.Warn("POST /admin/blocked-slots - Slot not in grid: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgSlotNotInGrid)

		case errors.Is(err, schedule.ErrAlreadyBlocked):
			h.logger.Warn("POST /admin/blocked-slots - Already blocked: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /admin/blocked-slots - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-slots - Created block id=%d by staff=%d", result.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
