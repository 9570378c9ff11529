package get_day_schedule

import (
	"net/http"
	"time"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/admin/schedule?date={date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/schedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDaySchedule(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/schedule - Failed: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/schedule - date=%s, %d slots", result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
