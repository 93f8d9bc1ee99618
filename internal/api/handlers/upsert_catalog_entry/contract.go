package upsert_catalog_entry

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
)

type CatalogService interface {
	Upsert(ctx context.Context, kind, id string, req *models.EntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
