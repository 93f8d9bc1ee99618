package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
)

// Service сервис управления каталогом: услуги, дополнительные услуги и мастера
type Service struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       Publisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher Publisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// List возвращает записи каталога в порядке добавления
func (s *Service) List(ctx context.Context, kind string) (*models.ListResponse, error) {
	k, err := parseKind(kind)
	if err != nil {
		s.logger.Warn("List: %v", err)
		return nil, err
	}

	var items interface{}
	switch k {
	case domain.KindService:
		items, err = s.catalogRepo.ListServices(ctx)
	case domain.KindAddon:
		items, err = s.catalogRepo.ListAddons(ctx)
	case domain.KindStaff:
		var staff []domain.Staff
		staff, err = s.catalogRepo.ListStaff(ctx)
		items = models.FromDomainStaffList(staff)
	}
	if err != nil {
		s.logger.Error("List: repository error for kind=%s: %v", k, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.ListResponse{Kind: string(k), Items: items}, nil
}

// Upsert создает запись каталога или полностью заменяет существующую с тем же id.
// Новая запись добавляется в конец списка, существующая сохраняет позицию.
func (s *Service) Upsert(ctx context.Context, kind, id string, req *models.EntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Upsert: kind=%s, id=%s", kind, id)

	// 1. Проверяем тип и id
	k, err := parseKind(kind)
	if err != nil {
		s.logger.Warn("Upsert: %v", err)
		return nil, err
	}
	if err := validateID(id); err != nil {
		s.logger.Warn("Upsert: %v", err)
		return nil, err
	}
	id = strings.TrimSpace(id)

	// 2. Валидируем и сохраняем запись
	var entry interface{}
	switch k {
	case domain.KindService:
		if err := validateOffering(req); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return nil, err
		}
		service := req.ToDomainService(id)
		err = s.catalogRepo.UpsertService(ctx, service)
		entry = service
	case domain.KindAddon:
		if err := validateOffering(req); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return nil, err
		}
		addon := req.ToDomainAddon(id)
		err = s.catalogRepo.UpsertAddon(ctx, addon)
		entry = addon
	case domain.KindStaff:
		if err := validateStaff(req); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return nil, err
		}
		staff := req.ToDomainStaff(id)
		err = s.catalogRepo.UpsertStaff(ctx, staff)
		entry = models.FromDomainStaff(&staff)
	}
	if err != nil {
		s.logger.Error("Upsert: repository error for kind=%s, id=%s: %v", k, id, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: kind=%s, id=%s saved", k, id)
	return &models.EntryResponse{Kind: string(k), Entry: entry}, nil
}

// Delete удаляет запись каталога.
// Удаление мастера отменяет все его ожидающие бронирования в той же транзакции.
func (s *Service) Delete(ctx context.Context, kind, id string) error {
	s.logger.Info("Delete: kind=%s, id=%s", kind, id)

	k, err := parseKind(kind)
	if err != nil {
		s.logger.Warn("Delete: %v", err)
		return err
	}

	switch k {
	case domain.KindService:
		err = s.catalogRepo.DeleteService(ctx, id)
	case domain.KindAddon:
		err = s.catalogRepo.DeleteAddon(ctx, id)
	case domain.KindStaff:
		return s.deleteStaff(ctx, id)
	}
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEntryNotFound) {
			s.logger.Warn("Delete: kind=%s, id=%s not found", k, id)
			return ErrEntryNotFound
		}
		s.logger.Error("Delete: repository error for kind=%s, id=%s: %v", k, id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: kind=%s, id=%s deleted", k, id)
	return nil
}

func (s *Service) deleteStaff(ctx context.Context, id string) error {
	now := s.timeProvider.Now()
	var cancelled int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Удаляем мастера
		if err := s.catalogRepo.DeleteStaff(txCtx, id); err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: Delete - delete staff: %v", ErrInternal, err)
		}

		// 2. Отменяем его ожидающие бронирования
		n, err := s.reservationRepo.CancelPendingByStaff(txCtx, id, now)
		if err != nil {
			return fmt.Errorf("%w: Delete - cancel pending reservations: %v", ErrInternal, err)
		}
		cancelled = n
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			s.logger.Warn("Delete: staff id=%s not found", id)
			return ErrEntryNotFound
		}
		s.logger.Error("Delete: failed to delete staff id=%s: %v", id, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: Delete - transaction: %v", ErrInternal, err)
		}
		return err
	}

	s.logger.Info("Delete: staff id=%s deleted, cancelled %d pending reservations", id, cancelled)
	s.metrics.AddCascadeCancellations(cancelled)

	if err := s.publisher.Publish(ctx, notifier.Event{
		Type:           notifier.EventStaffDeleted,
		OccurredAt:     now,
		StaffID:        id,
		CancelledCount: cancelled,
	}); err != nil {
		s.logger.Warn("Delete: publish %s failed: %v", notifier.EventStaffDeleted, err)
	}

	return nil
}

// EnsureSeeded заполняет каталог начальными данными.
// Каждая коллекция заполняется один раз: очищенная администратором коллекция повторно не заполняется.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	for _, kind := range domain.CatalogKinds {
		kind := kind
		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			done, err := s.catalogRepo.IsBootstrapped(txCtx, kind)
			if err != nil {
				return err
			}
			if done {
				return nil
			}

			if err := s.seed(txCtx, kind); err != nil {
				return err
			}

			s.logger.Info("EnsureSeeded: seeded %s", kind)
			return s.catalogRepo.MarkBootstrapped(txCtx, kind, s.timeProvider.Now())
		})
		if err != nil {
			s.logger.Error("EnsureSeeded: failed to seed %s: %v", kind, err)
			return fmt.Errorf("%w: EnsureSeeded - %s: %v", ErrInternal, kind, err)
		}
	}

	return nil
}

func (s *Service) seed(ctx context.Context, kind domain.CatalogKind) error {
	switch kind {
	case domain.KindService:
		for _, service := range domain.SeedServices() {
			if err := s.catalogRepo.UpsertService(ctx, service); err != nil {
				return err
			}
		}
	case domain.KindAddon:
		for _, addon := range domain.SeedAddons() {
			if err := s.catalogRepo.UpsertAddon(ctx, addon); err != nil {
				return err
			}
		}
	case domain.KindStaff:
		for _, staff := range domain.SeedStaff() {
			if err := s.catalogRepo.UpsertStaff(ctx, staff); err != nil {
				return err
			}
		}
	}
	return nil
}
