package create_lesson

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
	msgInvalidInput       = "некорректные данные занятия"
	msgSlotNotInGrid      = "время не попадает в сетку расписания"
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

// Handle POST /api/v1/admin/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.StaffIDFromContext(r.Context())

	var req models.CreateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateLesson(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/lessons - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrSlotNotInGrid):
			h.logger.Warn("POST /admin/lessons - Slot not in grid: date=%s, startTime=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotInGrid)

		default:
			h.logger.Error("POST /admin/lessons - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/lessons - Created lesson id=%d by staff=%d", result.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
