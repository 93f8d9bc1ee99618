package commit_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// resolveServices подставляет актуальные записи каталога вместо клиентских снимков.
// Для удаленной из каталога услуги используется снимок, если это разрешено политикой.
func (uc *UseCase) resolveServices(ctx context.Context, selected []SelectedService) ([]domain.Service, error) {
	ids := make([]string, len(selected))
	for i, s := range selected {
		ids[i] = s.ID
	}

	current, err := uc.catalogRepo.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	services := make([]domain.Service, 0, len(selected))
	for _, s := range selected {
		if record, ok := current[s.ID]; ok {
			services = append(services, record)
			continue
		}

		if !uc.policy.AllowSnapshotFallback || !isCompleteService(s.Snapshot) {
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, s.ID)
		}

		uc.logger.Warn("CommitBooking: service id=%s missing from catalog, using client snapshot", s.ID)
		snapshot := *s.Snapshot
		snapshot.ID = s.ID
		services = append(services, snapshot)
	}

	return services, nil
}

// resolveAddons аналогично resolveServices для дополнительных услуг
func (uc *UseCase) resolveAddons(ctx context.Context, selected []SelectedAddon) ([]domain.Addon, error) {
	if len(selected) == 0 {
		return []domain.Addon{}, nil
	}

	ids := make([]string, len(selected))
	for i, a := range selected {
		ids[i] = a.ID
	}

	current, err := uc.catalogRepo.GetAddonsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	addons := make([]domain.Addon, 0, len(selected))
	for _, a := range selected {
		if record, ok := current[a.ID]; ok {
			addons = append(addons, record)
			continue
		}

		if !uc.policy.AllowSnapshotFallback || !isCompleteAddon(a.Snapshot) {
			return nil, fmt.Errorf("%w: id=%s", ErrAddonNotFound, a.ID)
		}

		uc.logger.Warn("CommitBooking: addon id=%s missing from catalog, using client snapshot", a.ID)
		snapshot := *a.Snapshot
		snapshot.ID = a.ID
		addons = append(addons, snapshot)
	}

	return addons, nil
}

// calculateTotals суммирует цену и длительность выбранных услуг
func calculateTotals(services []domain.Service, addons []domain.Addon) (float64, int) {
	var (
		price    float64
		duration int
	)

	for _, s := range services {
		price += s.Price
		duration += s.Duration
	}
	for _, a := range addons {
		price += a.Price
		duration += a.Duration
	}

	return price, duration
}
