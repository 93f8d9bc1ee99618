package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/reservations/models"
)

const (
	msgInvalidFilter = "некорректный фильтр: status должен быть ALL, PENDING, COMPLETED или CANCELLED"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: status (ALL|PENDING|COMPLETED|CANCELLED), clientEmail, staffId, date (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := toServiceRequest(r)

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved: count=%d", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func toServiceRequest(r *http.Request) *models.ListRequest {
	query := r.URL.Query()
	req := &models.ListRequest{}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("clientEmail"); v != "" {
		req.ClientEmail = &v
	}
	if v := query.Get("staffId"); v != "" {
		req.StaffID = &v
	}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}

	return req
}
