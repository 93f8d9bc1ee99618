package domain

import "time"

// Значения по умолчанию
const (
	DefaultAdvanceBookingDays = 0 // без ограничений
	DefaultLockTimeout        = 5 * time.Second
)

// Ограничения валидации
const (
	MaxClientNameLength   = 200
	MaxClientEmailLength  = 254
	MaxServicesPerBooking = 10
	MaxAddonsPerBooking   = 10
	MaxAdvanceBookingDays = 365
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ParseDate разбирает "YYYY-MM-DD" как локальную дату
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// DateOnly обнуляет время суток
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast возвращает true, если дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}
