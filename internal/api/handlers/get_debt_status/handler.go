package get_debt_status

import (
	"net/http"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/internal/api/middleware"
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

// Handle GET /api/v1/debt-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, _ := middleware.ClientEmailFromContext(r.Context())

	result, err := h.service.GetDebtStatus(r.Context(), clientEmail)
	if err != nil {
		h.logger.Error("GET /debt-status - Failed: client=%s, error=%v", clientEmail, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /debt-status - client=%s, blocked=%v", clientEmail, result.Blocked)
	handlers.RespondJSON(w, http.StatusOK, result)
}
