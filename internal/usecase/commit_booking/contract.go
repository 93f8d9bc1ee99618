package commit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []string) (map[string]domain.Service, error)
	GetAddonsByIDs(ctx context.Context, ids []string) (map[string]domain.Addon, error)
	GetStaffByID(ctx context.Context, id string) (*domain.Staff, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]domain.Reservation, error)
	Insert(ctx context.Context, reservation *domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка слотов мастера на дату
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.Unlock, error)
}

// Publisher публикация событий бронирований
type Publisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// Metrics счетчик исходов фиксации бронирования
type Metrics interface {
	IncBookingCommit(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
