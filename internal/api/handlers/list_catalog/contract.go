package list_catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, kind string) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
