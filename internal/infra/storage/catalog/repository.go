package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, дополнительные услуги и мастера
type Repository struct {
	db DBExecutor
	qb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{db: db, qb: psqlbuilder.For(dialect)}
}

// nextPosition выражение позиции для новой записи: в конец коллекции
func nextPosition(table string) squirrel.Sqlizer {
	return squirrel.Expr(fmt.Sprintf("(SELECT COALESCE(MAX(position), 0) + 1 FROM %s)", table))
}

// deleteByID удаляет запись каталога по id
func (r *Repository) deleteByID(ctx context.Context, op, table, id string, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

// IsBootstrapped проверяет, была ли коллекция уже заполнена начальными данными
func (r *Repository) IsBootstrapped(ctx context.Context, kind domain.CatalogKind) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From("catalog_bootstrap").
		Where(squirrel.Eq{"collection": string(kind)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsBootstrapped - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsBootstrapped - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// MarkBootstrapped отмечает коллекцию как заполненную. Повторная отметка не ошибка
func (r *Repository) MarkBootstrapped(ctx context.Context, kind domain.CatalogKind, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Insert("catalog_bootstrap").
		Columns("collection", "seeded_at").
		Values(string(kind), at).
		Suffix("ON CONFLICT (collection) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBootstrapped - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkBootstrapped - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
