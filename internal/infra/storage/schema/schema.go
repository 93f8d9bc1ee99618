package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
)

// ErrMigrate возвращается при ошибке создания схемы
var ErrMigrate = errors.New("schema: migration failed")

// Миграции идемпотентны (IF NOT EXISTS) и выполняются при каждом старте.
// Типы колонок различаются только там, где у диалектов нет общего имени.
func statements(d psqlbuilder.Dialect) []string {
	realType, tsType := "DOUBLE PRECISION", "TIMESTAMPTZ"
	if d == psqlbuilder.SQLite {
		realType, tsType = "REAL", "DATETIME"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS services (
	id          VARCHAR(64)  PRIMARY KEY,
	position    INTEGER      NOT NULL,
	name        VARCHAR(255) NOT NULL,
	price       %s           NOT NULL CHECK (price >= 0),
	duration    INTEGER      NOT NULL CHECK (duration > 0),
	description TEXT         NOT NULL DEFAULT '',
	icon        VARCHAR(64)  NOT NULL DEFAULT ''
)`, realType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS addons (
	id          VARCHAR(64)  PRIMARY KEY,
	position    INTEGER      NOT NULL,
	name        VARCHAR(255) NOT NULL,
	price       %s           NOT NULL CHECK (price >= 0),
	duration    INTEGER      NOT NULL CHECK (duration > 0),
	description TEXT         NOT NULL DEFAULT ''
)`, realType),
		`CREATE TABLE IF NOT EXISTS staff (
	id              VARCHAR(64)  PRIMARY KEY,
	position        INTEGER      NOT NULL,
	name            VARCHAR(255) NOT NULL,
	role            VARCHAR(255) NOT NULL DEFAULT '',
	avatar          TEXT         NOT NULL DEFAULT '',
	specialty       VARCHAR(255) NOT NULL DEFAULT '',
	available_days  TEXT         NOT NULL DEFAULT '[]',
	available_hours TEXT         NOT NULL DEFAULT '[]'
)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS reservations (
	id             VARCHAR(36)  PRIMARY KEY,
	staff_id       VARCHAR(64)  NOT NULL,
	staff_name     VARCHAR(255) NOT NULL DEFAULT '',
	booking_date   VARCHAR(10)  NOT NULL,
	start_time     VARCHAR(5)   NOT NULL,
	services       TEXT         NOT NULL,
	addons         TEXT         NOT NULL DEFAULT '[]',
	client_name    VARCHAR(255) NOT NULL,
	client_email   VARCHAR(255) NOT NULL,
	total_price    %s           NOT NULL,
	total_duration INTEGER      NOT NULL,
	status         VARCHAR(16)  NOT NULL DEFAULT 'PENDING'
		CHECK (status IN ('PENDING', 'COMPLETED', 'CANCELLED')),
	created_at     %s           NOT NULL,
	updated_at     %s           NOT NULL
)`, realType, tsType, tsType),
		// Не более одного неотмененного бронирования на слот мастера
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_active_slot
	ON reservations (staff_id, booking_date, start_time)
	WHERE status <> 'CANCELLED'`,
		`CREATE INDEX IF NOT EXISTS ix_reservations_client_email ON reservations (client_email)`,
		`CREATE INDEX IF NOT EXISTS ix_reservations_created ON reservations (created_at, id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS catalog_bootstrap (
	collection VARCHAR(32) PRIMARY KEY,
	seeded_at  %s          NOT NULL
)`, tsType),
	}
}

// Migrate создает таблицы и индексы, если их нет
func Migrate(ctx context.Context, db dbmetrics.DBExecutor, dialect psqlbuilder.Dialect) error {
	if !dialect.Valid() {
		return fmt.Errorf("%w: unsupported dialect %q", ErrMigrate, dialect)
	}

	for i, stmt := range statements(dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: statement %d: %v", ErrMigrate, i, err)
		}
	}
	return nil
}
