package resolve_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
)

// Результаты запроса доступности для метрик
const (
	lookupOK       = "ok"
	lookupNotFound = "not_found"
	lookupInvalid  = "invalid"
	lookupError    = "error"
)

// UseCase use case для получения свободных слотов мастера
type UseCase struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	policy          domain.BookingPolicy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: staff=%s, date=%s", req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		uc.metrics.IncAvailabilityLookup(lookupInvalid)
		return nil, err
	}

	// 2. Проверяем дату относительно текущего времени
	now := uc.timeProvider.Now()
	if err := ValidateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("ResolveAvailability: date validation failed: %v", err)
		uc.metrics.IncAvailabilityLookup(lookupInvalid)
		return nil, err
	}

	// 3. Получаем мастера
	staff, err := uc.catalogRepo.GetStaffByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("ResolveAvailability: staff id=%s not found", req.StaffID)
			uc.metrics.IncAvailabilityLookup(lookupNotFound)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("ResolveAvailability: failed to get staff id=%s: %v", req.StaffID, err)
		uc.metrics.IncAvailabilityLookup(lookupError)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 4. Нерабочий день: бронирования можно не читать
	if !staff.WorksOn(req.Date.Weekday()) {
		uc.logger.Info("ResolveAvailability: staff %s does not work on %s", staff.ID, req.Date.Weekday())
		uc.metrics.IncAvailabilityLookup(lookupOK)
		return &Response{StaffID: staff.ID, Date: req.Date, Slots: ResolveSlots(staff, req.Date, now, nil)}, nil
	}

	// 5. Получаем активные бронирования мастера на дату
	reservations, err := uc.reservationRepo.ListActiveByStaffAndDate(ctx, staff.ID, req.Date)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get reservations: %v", err)
		uc.metrics.IncAvailabilityLookup(lookupError)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Вычисляем свободные слоты
	slots := ResolveSlots(staff, req.Date, now, reservations)

	uc.logger.Info("ResolveAvailability: %d of %d slots free for staff=%s, date=%s",
		len(slots), len(staff.AvailableHours), staff.ID, req.Date.Format(domain.DateFormat))
	uc.metrics.IncAvailabilityLookup(lookupOK)

	return &Response{
		StaffID: staff.ID,
		Date:    req.Date,
		Slots:   slots,
	}, nil
}
