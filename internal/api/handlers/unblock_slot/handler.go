package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
	"github.com/equiclub/EQC-BookingService/internal/service/schedule"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgBlockNotFound  = "блокировка не найдена"
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

// Handle DELETE /api/v1/admin/blocked-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.StaffIDFromContext(r.Context())

	blockID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || blockID <= 0 {
		h.logger.Warn("DELETE /admin/blocked-slots/{id} - Invalid block id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.UnblockSlot(r.Context(), blockID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /admin/blocked-slots/{id} - Not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /admin/blocked-slots/{id} - Failed: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-slots/{id} - Removed block id=%d by staff=%d", blockID, staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
