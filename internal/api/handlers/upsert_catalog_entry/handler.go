package upsert_catalog_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownKind        = "неизвестный раздел каталога, ожидается services, addons или staff"
	msgInvalidEntry       = "некорректные данные записи каталога"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/catalog/{kind}/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, entryID := vars["kind"], vars["entryId"]

	var req models.EntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /catalog/{kind}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), kind, entryID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownKind):
			h.logger.Warn("PUT /catalog/{kind}/{id} - Unknown kind: %s", kind)
			handlers.RespondNotFound(w, msgUnknownKind)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /catalog/{kind}/{id} - Validation failed: kind=%s, id=%s, %v", kind, entryID, err)
			handlers.RespondBadRequest(w, msgInvalidEntry)

		default:
			h.logger.Error("PUT /catalog/{kind}/{id} - Failed to save entry: kind=%s, id=%s, error=%v", kind, entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /catalog/{kind}/{id} - Entry saved: kind=%s, id=%s", kind, entryID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
