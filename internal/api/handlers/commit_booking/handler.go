package commit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	commitBooking "github.com/m04kA/SMC-BarberScheduler/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPastDate           = "нельзя записаться на прошедшую дату"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSlotNotAvailable   = "мастер не работает в выбранное время"
	msgBookingConflict    = "выбранное время уже занято"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgAddonNotFound      = "дополнительная услуга не найдена"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CommitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitBooking.ErrBookingConflict):
			h.logger.Warn("POST /reservations - Slot already booked: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, commitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not in schedule: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, commitBooking.ErrStaffNotFound):
			h.logger.Warn("POST /reservations - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, commitBooking.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, commitBooking.ErrAddonNotFound):
			h.logger.Warn("POST /reservations - Addon not found: %v", err)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, commitBooking.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, commitBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to commit booking: staff_id=%s, date=%s, time=%s, error=%v",
				req.StaffID, req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, staff_id=%s, date=%s, time=%s",
		result.ID, result.StaffID, result.Date.Format(domain.DateFormat), result.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
