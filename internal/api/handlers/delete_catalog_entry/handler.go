package delete_catalog_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog"
)

const (
	msgUnknownKind = "неизвестный раздел каталога, ожидается services, addons или staff"
	msgNotFound    = "запись каталога не найдена"
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

// Handle DELETE /api/v1/catalog/{kind}/{entryId}
// Удаление мастера отменяет его ожидающие бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, entryID := vars["kind"], vars["entryId"]

	if err := h.service.Delete(r.Context(), kind, entryID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownKind):
			h.logger.Warn("DELETE /catalog/{kind}/{id} - Unknown kind: %s", kind)
			handlers.RespondNotFound(w, msgUnknownKind)

		case errors.Is(err, catalog.ErrEntryNotFound):
			h.logger.Warn("DELETE /catalog/{kind}/{id} - Entry not found: kind=%s, id=%s", kind, entryID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /catalog/{kind}/{id} - Failed to delete entry: kind=%s, id=%s, error=%v", kind, entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /catalog/{kind}/{id} - Entry deleted: kind=%s, id=%s", kind, entryID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
