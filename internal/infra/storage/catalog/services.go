package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
)

var serviceColumns = []string{"id", "name", "price", "duration", "description", "icon"}

// ListServices возвращает услуги в порядке добавления
func (r *Repository) ListServices(ctx context.Context) ([]domain.Service, error) {
	return r.selectServices(ctx, "ListServices", nil)
}

// GetServicesByIDs возвращает найденные услуги по id. Отсутствующие id в результат не попадают
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []string) (map[string]domain.Service, error) {
	if len(ids) == 0 {
		return map[string]domain.Service{}, nil
	}

	services, err := r.selectServices(ctx, "GetServicesByIDs", squirrel.Eq{"id": ids})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	return byID, nil
}

// UpsertService создает услугу в конце списка или обновляет существующую, сохраняя позицию
func (r *Repository) UpsertService(ctx context.Context, service domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Insert("services").
		Columns("id", "position", "name", "price", "duration", "description", "icon").
		Values(
			service.ID,
			nextPosition("services"),
			service.Name,
			service.Price,
			service.Duration,
			service.Description,
			service.Icon,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			duration = EXCLUDED.duration,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertService - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertService - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteService удаляет услугу. Снимки в бронированиях не затрагиваются
func (r *Repository) DeleteService(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "DeleteService", "services", id, ErrEntryNotFound)
}

func (r *Repository) selectServices(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(serviceColumns...).
		From("services").
		OrderBy("position ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanServices(op, rows)
}

func scanServices(op string, rows *sql.Rows) ([]domain.Service, error) {
	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Duration, &s.Description, &s.Icon); err != nil {
			return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, op, err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return services, nil
}
