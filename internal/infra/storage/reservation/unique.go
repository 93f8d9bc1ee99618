package reservation

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// isUniqueViolation распознает нарушение уникального индекса в обоих драйверах
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		// без расширенных кодов приходит только SQLITE_CONSTRAINT
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
	}

	return false
}

// isLostRace true, если вставка проиграла конкурентной брони того же слота:
// уникальный индекс или откат SERIALIZABLE-транзакции (40001/40P01)
func isLostRace(err error) bool {
	return isUniqueViolation(err) || txmanager.IsSerializationFailure(err)
}
