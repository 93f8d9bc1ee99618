package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	UpsertService(ctx context.Context, service domain.Service) error
	DeleteService(ctx context.Context, id string) error

	ListAddons(ctx context.Context) ([]domain.Addon, error)
	UpsertAddon(ctx context.Context, addon domain.Addon) error
	DeleteAddon(ctx context.Context, id string) error

	ListStaff(ctx context.Context) ([]domain.Staff, error)
	UpsertStaff(ctx context.Context, staff domain.Staff) error
	DeleteStaff(ctx context.Context, id string) error

	IsBootstrapped(ctx context.Context, kind domain.CatalogKind) (bool, error)
	MarkBootstrapped(ctx context.Context, kind domain.CatalogKind, at time.Time) error
}

// ReservationRepository интерфейс репозитория бронирований для каскадной отмены
type ReservationRepository interface {
	CancelPendingByStaff(ctx context.Context, staffID string, at time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher публикация событий
type Publisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// Metrics счетчик каскадных отмен
type Metrics interface {
	AddCascadeCancellations(n int64)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
