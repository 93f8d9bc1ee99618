package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

var staffColumns = []string{"id", "name", "role", "avatar", "specialty", "available_days", "available_hours"}

// ListStaff возвращает мастеров в порядке добавления
func (r *Repository) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(staffColumns...).
		From("staff").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]domain.Staff, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaff - %v", ErrScanRow, err)
		}
		staff = append(staff, *member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows iteration: %v", ErrScanRow, err)
	}

	return staff, nil
}

// GetStaffByID получает мастера по id
func (r *Repository) GetStaffByID(ctx context.Context, id string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - build select query: %v", ErrBuildQuery, err)
	}

	member, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - %v", ErrScanRow, err)
	}

	return member, nil
}

// UpsertStaff создает мастера в конце списка или обновляет существующего
func (r *Repository) UpsertStaff(ctx context.Context, staff domain.Staff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	days, err := json.Marshal(nonNilDays(staff.AvailableDays))
	if err != nil {
		return fmt.Errorf("%w: UpsertStaff - days: %v", ErrEncode, err)
	}
	hours, err := json.Marshal(nonNilHours(staff.AvailableHours))
	if err != nil {
		return fmt.Errorf("%w: UpsertStaff - hours: %v", ErrEncode, err)
	}

	query, args, err := r.qb.Insert("staff").
		Columns("id", "position", "name", "role", "avatar", "specialty", "available_days", "available_hours").
		Values(
			staff.ID,
			nextPosition("staff"),
			staff.Name,
			staff.Role,
			staff.Avatar,
			staff.Specialty,
			string(days),
			string(hours),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			avatar = EXCLUDED.avatar,
			specialty = EXCLUDED.specialty,
			available_days = EXCLUDED.available_days,
			available_hours = EXCLUDED.available_hours`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertStaff - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertStaff - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteStaff удаляет мастера. Отмена его бронирований выполняется сервисом каталога в той же транзакции
func (r *Repository) DeleteStaff(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "DeleteStaff", "staff", id, ErrStaffNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var (
		member      domain.Staff
		days, hours string
	)

	if err := row.Scan(&member.ID, &member.Name, &member.Role, &member.Avatar, &member.Specialty, &days, &hours); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &member.AvailableDays); err != nil {
		return nil, fmt.Errorf("decode available_days of %s: %v", member.ID, err)
	}
	if err := json.Unmarshal([]byte(hours), &member.AvailableHours); err != nil {
		return nil, fmt.Errorf("decode available_hours of %s: %v", member.ID, err)
	}

	return &member, nil
}

func nonNilDays(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}

func nonNilHours(hours []types.TimeString) []types.TimeString {
	if hours == nil {
		return []types.TimeString{}
	}
	return hours
}
