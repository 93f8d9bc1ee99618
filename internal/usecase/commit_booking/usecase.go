package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/lock"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberScheduler/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-BarberScheduler/pkg/metrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

// UseCase use case для фиксации бронирования
type UseCase struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	locker          Locker
	publisher       Publisher
	policy          domain.BookingPolicy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	locker Locker,
	publisher Publisher,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		locker:          locker,
		publisher:       publisher,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case фиксации бронирования.
// Слот блокируется по (мастер, дата), проверка и вставка выполняются в сериализуемой транзакции.
// Другой слот вместо запрошенного никогда не выбирается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: staff=%s, date=%s, time=%s, services=%d, addons=%d",
		req.StaffID, req.Date.Format(domain.DateFormat), req.Time, len(req.Services), len(req.Addons))

	result, err := uc.execute(ctx, req)
	uc.metrics.IncBookingCommit(outcomeOf(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CommitBooking: successfully committed reservation id=%s (total=%.2f, duration=%d)",
		result.ID, result.TotalPrice, result.TotalDuration)

	// Публикация события не влияет на результат бронирования
	event := notifier.NewReservationEvent(notifier.EventReservationCreated, result, result.CreatedAt)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CommitBooking: failed to publish %s for id=%s: %v", event.Type, result.ID, err)
	}

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату относительно текущего времени
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("CommitBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Подставляем актуальные цены и длительности из каталога
	services, err := uc.resolveServices(ctx, req.Services)
	if err != nil {
		uc.logger.Warn("CommitBooking: failed to resolve services: %v", err)
		return nil, err
	}
	addons, err := uc.resolveAddons(ctx, req.Addons)
	if err != nil {
		uc.logger.Warn("CommitBooking: failed to resolve addons: %v", err)
		return nil, err
	}

	// 4. Пересчитываем итоги на сервере
	totalPrice, totalDuration := calculateTotals(services, addons)

	reservation := &domain.Reservation{
		ID:            uuid.NewString(),
		StaffID:       req.StaffID,
		Date:          domain.DateOnly(req.Date),
		Time:          req.Time,
		Status:        domain.StatusPending,
		Services:      services,
		Addons:        addons,
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientEmail:   strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
	}

	// 5. Блокируем слоты мастера на дату
	key := lock.SlotKey(req.StaffID, req.Date)
	unlock, err := uc.locker.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		uc.logger.Error("CommitBooking: failed to acquire lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}
	defer unlock()

	// 6. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем мастера
		staff, err := uc.catalogRepo.GetStaffByID(txCtx, req.StaffID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("CommitBooking: staff id=%s not found", req.StaffID)
				return ErrStaffNotFound
			}
			uc.logger.Error("CommitBooking: failed to get staff id=%s: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		reservation.StaffName = staff.Name

		// 6.2. Получаем активные бронирования мастера на дату с блокировкой (FOR UPDATE)
		active, err := uc.reservationRepo.ListActiveByStaffAndDate(txCtx, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CommitBooking: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 6.3. Проверяем слот тем же алгоритмом, что и выдачу свободных слотов
		if resolve_availability.IsSlotHeld(req.StaffID, req.Date, req.Time, active) {
			uc.logger.Warn("CommitBooking: slot %s %s of staff %s already booked",
				req.Date.Format(domain.DateFormat), req.Time, req.StaffID)
			return ErrBookingConflict
		}

		if !staff.HasSlot(req.Time) {
			uc.logger.Warn("CommitBooking: slot %s is outside of staff %s schedule", req.Time, req.StaffID)
			return fmt.Errorf("%w: %s is not in staff schedule", ErrSlotNotAvailable, req.Time)
		}

		// Время перечитывается после ожидания блокировки: слот мог пройти
		txNow := uc.timeProvider.Now()
		free := resolve_availability.ResolveSlots(staff, req.Date, txNow, active)
		if !resolve_availability.Contains(free, req.Time) {
			uc.logger.Warn("CommitBooking: slot %s %s of staff %s is not available",
				req.Date.Format(domain.DateFormat), req.Time, req.StaffID)
			return fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, req.Date.Format(domain.DateFormat), req.Time)
		}
		reservation.CreatedAt = txNow
		reservation.UpdatedAt = txNow

		// 6.4. Сохраняем бронирование
		if err := uc.reservationRepo.Insert(txCtx, reservation); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CommitBooking: slot taken on insert for staff %s", req.StaffID)
				return ErrBookingConflict
			}
			uc.logger.Error("CommitBooking: failed to insert reservation: %v", err)
			return fmt.Errorf("%w: failed to insert reservation: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if isKnown(err) {
			return nil, err
		}
		// Postgres откатил SERIALIZABLE-транзакцию на фиксации в пользу конкурентной брони
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CommitBooking: serialization failure for staff %s: %v", req.StaffID, err)
			return nil, fmt.Errorf("%w: concurrent booking won", ErrBookingConflict)
		}
		uc.logger.Error("CommitBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return reservation, nil
}

// isKnown возвращает true для ошибок из таксономии use case
func isKnown(err error) bool {
	for _, known := range []error{
		ErrStaffNotFound, ErrServiceNotFound, ErrAddonNotFound, ErrInvalidDate, ErrDateTooFarInFuture,
		ErrSlotNotAvailable, ErrBookingConflict, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCommitted
	case errors.Is(err, ErrBookingConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrInternal):
		return metrics.OutcomeError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeError
	default:
		return metrics.OutcomeInvalid
	}
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		StaffID:       r.StaffID,
		Date:          r.Date,
		Time:          r.Time,
		Services:      r.Services,
		Addons:        r.Addons,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		TotalPrice:    r.TotalPrice,
		TotalDuration: r.TotalDuration,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
