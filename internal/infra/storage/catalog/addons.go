package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
)

var addonColumns = []string{"id", "name", "price", "duration", "description"}

// ListAddons возвращает дополнительные услуги в порядке добавления
func (r *Repository) ListAddons(ctx context.Context) ([]domain.Addon, error) {
	return r.selectAddons(ctx, "ListAddons", nil)
}

// GetAddonsByIDs возвращает найденные дополнительные услуги по id
func (r *Repository) GetAddonsByIDs(ctx context.Context, ids []string) (map[string]domain.Addon, error) {
	if len(ids) == 0 {
		return map[string]domain.Addon{}, nil
	}

	addons, err := r.selectAddons(ctx, "GetAddonsByIDs", squirrel.Eq{"id": ids})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Addon, len(addons))
	for _, a := range addons {
		byID[a.ID] = a
	}
	return byID, nil
}

// UpsertAddon создает дополнительную услугу в конце списка или обновляет существующую
func (r *Repository) UpsertAddon(ctx context.Context, addon domain.Addon) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Insert("addons").
		Columns("id", "position", "name", "price", "duration", "description").
		Values(
			addon.ID,
			nextPosition("addons"),
			addon.Name,
			addon.Price,
			addon.Duration,
			addon.Description,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			duration = EXCLUDED.duration,
			description = EXCLUDED.description`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertAddon - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAddon - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteAddon удаляет дополнительную услугу
func (r *Repository) DeleteAddon(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "DeleteAddon", "addons", id, ErrEntryNotFound)
}

func (r *Repository) selectAddons(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(addonColumns...).
		From("addons").
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

	return scanAddons(op, rows)
}

func scanAddons(op string, rows *sql.Rows) ([]domain.Addon, error) {
	addons := make([]domain.Addon, 0)
	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.Duration, &a.Description); err != nil {
			return nil, fmt.Errorf("%w: %s - scan addon: %v", ErrScanRow, op, err)
		}
		addons = append(addons, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return addons, nil
}
