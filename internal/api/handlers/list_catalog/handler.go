package list_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog"
)

const (
	msgUnknownKind = "неизвестный раздел каталога, ожидается services, addons или staff"
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

// Handle GET /api/v1/catalog/{kind}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	result, err := h.service.List(r.Context(), kind)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownKind):
			h.logger.Warn("GET /catalog/{kind} - Unknown kind: %s", kind)
			handlers.RespondNotFound(w, msgUnknownKind)

		default:
			h.logger.Error("GET /catalog/{kind} - Failed to list catalog: kind=%s, error=%v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
