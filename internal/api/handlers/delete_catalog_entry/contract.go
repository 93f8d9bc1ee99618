package delete_catalog_entry

import "context"

type CatalogService interface {
	Delete(ctx context.Context, kind, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
