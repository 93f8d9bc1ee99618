package notifier

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// Типы событий (routing key в exchange)
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationDeleted       = "reservation.deleted"
	EventStaffDeleted             = "staff.deleted"
)

// Event событие жизненного цикла бронирования
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	ReservationID  string  `json:"reservationId,omitempty"`
	StaffID        string  `json:"staffId,omitempty"`
	Date           string  `json:"date,omitempty"`
	Time           string  `json:"time,omitempty"`
	Status         string  `json:"status,omitempty"`
	PreviousStatus string  `json:"previousStatus,omitempty"`
	ClientName     string  `json:"clientName,omitempty"`
	ClientEmail    string  `json:"clientEmail,omitempty"`
	TotalPrice     float64 `json:"totalPrice,omitempty"`
	CancelledCount int64   `json:"cancelledCount,omitempty"`
}

// NewReservationEvent создает событие по бронированию
func NewReservationEvent(eventType string, r *domain.Reservation, at time.Time) Event {
	return Event{
		Type:          eventType,
		OccurredAt:    at,
		ReservationID: r.ID,
		StaffID:       r.StaffID,
		Date:          r.Date.Format(domain.DateFormat),
		Time:          r.Time.String(),
		Status:        string(r.Status),
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		TotalPrice:    r.TotalPrice,
	}
}
