package cancel_lesson

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
	msgInvalidLessonID = "некорректный ID занятия"
	msgLessonNotFound  = "занятие не найдено"
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

// Handle DELETE /api/v1/admin/lessons/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.StaffIDFromContext(r.Context())

	lessonID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || lessonID <= 0 {
		h.logger.Warn("DELETE /admin/lessons/{id} - Invalid lesson id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	if err := h.service.CancelLesson(r.Context(), lessonID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrLessonNotFound):
			h.logger.Warn("DELETE /admin/lessons/{id} - Not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgLessonNotFound)

		default:
			h.logger.Error("DELETE /admin/lessons/{id} - Failed: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/lessons/{id} - Cancelled lesson id=%d by staff=%d", lessonID, staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
