package resolve_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetStaffByID(ctx context.Context, id string) (*domain.Staff, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListActiveByStaffAndDate получает неотмененные бронирования мастера на дату
	ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]domain.Reservation, error)
}

// Metrics счетчик запросов доступности
type Metrics interface {
	IncAvailabilityLookup(result string)
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
