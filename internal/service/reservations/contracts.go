package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListAll(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	SetStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.ReservationStats, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher публикация событий бронирований
type Publisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// Metrics счетчик переходов статусов
type Metrics interface {
	IncStatusTransition(from, to string)
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
