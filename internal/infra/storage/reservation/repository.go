package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

var reservationColumns = []string{
	"id",
	"staff_id",
	"staff_name",
	"booking_date",
	"start_time",
	"services",
	"addons",
	"client_name",
	"client_email",
	"total_price",
	"total_duration",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	dialect psqlbuilder.Dialect
	qb      squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect, qb: psqlbuilder.For(dialect)}
}

// Insert атомарно проверяет слот и сохраняет бронирование.
// Если слот (staff_id, booking_date, start_time) занят неотмененным бронированием,
// возвращает ErrSlotTaken. Проверка выполняется чтением в текущей транзакции
// и дублируется частичным уникальным индексом.
func (r *Repository) Insert(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	taken, err := r.isSlotTaken(ctx, reservation.StaffID, reservation.Date, reservation.Time)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	services, err := json.Marshal(reservation.Services)
	if err != nil {
		return fmt.Errorf("%w: Insert - services: %v", ErrEncode, err)
	}
	addons := []byte("[]")
	if len(reservation.Addons) > 0 {
		if addons, err = json.Marshal(reservation.Addons); err != nil {
			return fmt.Errorf("%w: Insert - addons: %v", ErrEncode, err)
		}
	}

	query, args, err := r.qb.Insert("reservations").
		Columns(reservationColumns...).
		Values(
			reservation.ID,
			reservation.StaffID,
			reservation.StaffName,
			reservation.Date.Format(domain.DateFormat),
			reservation.Time.String(),
			string(services),
			string(addons),
			reservation.ClientName,
			reservation.ClientEmail,
			reservation.TotalPrice,
			reservation.TotalDuration,
			string(reservation.Status),
			reservation.CreatedAt,
			reservation.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isLostRace(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) isSlotTaken(ctx context.Context, staffID string, date time.Time, t types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{
			"staff_id":     staffID,
			"booking_date": date.Format(domain.DateFormat),
			"start_time":   t.String(),
		}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Insert - build conflict query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return false, ErrSlotTaken
		}
		return false, fmt.Errorf("%w: Insert - scan conflict count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// ListActiveByStaffAndDate возвращает неотмененные бронирования мастера на дату.
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE).
func (r *Repository) ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"staff_id":     staffID,
			"booking_date": date.Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && r.dialect.SupportsRowLocks() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations("ListActiveByStaffAndDate", rows)
}

// ListAll возвращает бронирования в порядке создания с учетом фильтра
func (r *Repository) ListAll(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(reservationColumns...).
		From("reservations").
		OrderBy("created_at ASC", "id ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.ClientEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_email": strings.ToLower(strings.TrimSpace(*filter.ClientEmail))})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations("ListAll", rows)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	// Смена статуса читает и пишет строку в одной транзакции
	if dbmetrics.IsInTransaction(ctx) && r.dialect.SupportsRowLocks() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// SetStatus обновляет статус бронирования
func (r *Repository) SetStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("reservations").
		Set("status", string(status)).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		// Возврат отмененного бронирования в активное может упереться в уникальный индекс
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete безвозвратно удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CancelPendingByStaff отменяет все ожидающие бронирования мастера.
// Завершенные бронирования не затрагиваются. Возвращает количество отмененных.
func (r *Repository) CancelPendingByStaff(ctx context.Context, staffID string, at time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("reservations").
		Set("status", string(domain.StatusCancelled)).
		Set("updated_at", at).
		Where(squirrel.Eq{
			"staff_id": staffID,
			"status":   string(domain.StatusPending),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByStaff - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByStaff - execute update: %v", ErrExecQuery, err)
	}

	cancelled, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelPendingByStaff - get rows affected: %v", ErrExecQuery, err)
	}

	return cancelled, nil
}

// Stats считает сводку для панели администратора
func (r *Repository) Stats(ctx context.Context) (domain.ReservationStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(
		"COALESCE(SUM(CASE WHEN status <> 'CANCELLED' THEN total_price ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0)",
		"COUNT(*)",
	).
		From("reservations").
		ToSql()
	if err != nil {
		return domain.ReservationStats{}, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.ReservationStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stats.TotalRevenue, &stats.Pending, &stats.Total)
	if err != nil {
		return domain.ReservationStats{}, fmt.Errorf("%w: Stats - scan stats: %v", ErrScanRow, err)
	}

	return stats, nil
}

func (r *Repository) scanReservations(op string, rows *sql.Rows) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, *reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation      domain.Reservation
		date, startTime  string
		status           string
		services, addons string
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.StaffID,
		&reservation.StaffName,
		&date,
		&startTime,
		&services,
		&addons,
		&reservation.ClientName,
		&reservation.ClientEmail,
		&reservation.TotalPrice,
		&reservation.TotalDuration,
		&status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reservation.Date, err = domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parse booking_date of %s: %v", reservation.ID, err)
	}
	reservation.Time = types.TimeString(startTime)
	reservation.Status = domain.ReservationStatus(status)

	if err := json.Unmarshal([]byte(services), &reservation.Services); err != nil {
		return nil, fmt.Errorf("decode services of %s: %v", reservation.ID, err)
	}
	if err := json.Unmarshal([]byte(addons), &reservation.Addons); err != nil {
		return nil, fmt.Errorf("decode addons of %s: %v", reservation.ID, err)
	}

	return &reservation, nil
}
