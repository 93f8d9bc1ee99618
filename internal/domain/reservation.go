package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// ErrUnknownStatus возвращается при разборе неизвестного статуса
var ErrUnknownStatus = errors.New("domain: unknown reservation status")

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation бронирование времени мастера
type Reservation struct {
	ID      string
	StaffID string
	Date    time.Time // только дата, время суток обнулено
	Time    types.TimeString
	Status  ReservationStatus

	// Снимки каталога на момент бронирования
	StaffName string
	Services  []Service
	Addons    []Addon

	ClientName    string
	ClientEmail   string
	TotalPrice    float64
	TotalDuration int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает слот
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// Occupies возвращает true, если активное бронирование держит слот staffID/date/time
func (r *Reservation) Occupies(staffID string, date time.Time, t types.TimeString) bool {
	return r.IsActive() && r.StaffID == staffID && SameDay(r.Date, date) && r.Time == t
}

// CanTransitionTo проверяет переход статуса: PENDING -> COMPLETED | CANCELLED,
// COMPLETED и CANCELLED терминальные
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// IsTerminal возвращает true для конечных статусов
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseReservationStatus разбирает статус из строки
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch status := ReservationStatus(s); status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// ReservationFilter фильтр списка бронирований. nil-поля не фильтруют
type ReservationFilter struct {
	Status      *ReservationStatus
	ClientEmail *string
	StaffID     *string
	Date        *time.Time
}

// ReservationStats сводка для панели администратора
type ReservationStats struct {
	TotalRevenue float64 // по всем неотмененным бронированиям
	Pending      int
	Total        int
}
