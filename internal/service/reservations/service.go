package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями: список, статусы, удаление, сводка
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       Publisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher Publisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// List получает бронирования в порядке создания с фильтрацией по статусу и email клиента
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations status=%v, clientEmail=%v", deref(req.Status), deref(req.ClientEmail))

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus меняет статус бронирования.
// Допустимы только переходы PENDING -> COMPLETED и PENDING -> CANCELLED.
// Установка текущего статуса ничего не меняет и не считается ошибкой.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%s, status=%s", id, req.Status)

	next, err := domain.ParseReservationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q", req.Status)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	var (
		updated  *domain.Reservation
		previous domain.ReservationStatus
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование (FOR UPDATE внутри транзакции)
		current, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get reservation: %v", ErrInternal, err)
		}
		previous = current.Status
		updated = current

		// 2. Повторная установка того же статуса
		if current.Status == next {
			return nil
		}

		// 3. Проверяем переход
		if current.Status.IsTerminal() {
			return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current.Status)
		}
		if !current.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		// 4. Сохраняем
		now := s.timeProvider.Now()
		if err := s.reservationRepo.SetStatus(txCtx, id, next, now); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - set status: %v", ErrInternal, err)
		}

		updated.Status = next
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			s.logger.Warn("UpdateStatus: reservation id=%s not found", id)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: %v", err)
		default:
			s.logger.Error("UpdateStatus: failed for reservation id=%s: %v", id, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: UpdateStatus - transaction: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	if previous == next {
		s.logger.Info("UpdateStatus: reservation id=%s already %s", id, next)
		return models.FromDomainReservation(updated), nil
	}

	s.metrics.IncStatusTransition(string(previous), string(next))
	event := notifier.NewReservationEvent(notifier.EventReservationStatusChanged, updated, updated.UpdatedAt)
	event.PreviousStatus = string(previous)
	s.publish(ctx, event)

	s.logger.Info("UpdateStatus: reservation id=%s moved %s -> %s", id, previous, next)
	return models.FromDomainReservation(updated), nil
}

// Delete безвозвратно удаляет бронирование
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting reservation id=%s", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, notifier.Event{
		Type:          notifier.EventReservationDeleted,
		OccurredAt:    s.timeProvider.Now(),
		ReservationID: id,
	})

	s.logger.Info("Delete: reservation id=%s deleted", id)
	return nil
}

// Stats возвращает сводку: выручка без отмененных, количество ожидающих и всего
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.reservationRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

func (s *Service) publish(ctx context.Context, event notifier.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish %s failed: %v", event.Type, err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
