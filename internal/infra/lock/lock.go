package lock

import (
	"errors"
	"fmt"
	"time"
)

// ErrLockTimeout возвращается, если блокировку не удалось получить за отведенное время
var ErrLockTimeout = errors.New("lock: acquire timeout")

// Unlock снимает полученную блокировку. Повторный вызов безопасен
type Unlock func()

// SlotKey ключ блокировки слотов мастера на дату
func SlotKey(staffID string, date time.Time) string {
	return fmt.Sprintf("barber:slot:%s:%s", staffID, date.Format("2006-01-02"))
}
