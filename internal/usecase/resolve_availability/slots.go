package resolve_availability

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// ResolveSlots вычисляет свободные слоты мастера на дату.
//
// Слот свободен, если день недели входит в рабочие дни мастера, время входит
// в его сетку, для сегодняшней даты время строго позже текущего, и слот не занят
// неотмененным бронированием этого мастера на эту дату.
// Сетка не сортируется и не дедуплицируется: порядок и повторы сохраняются.
func ResolveSlots(staff *domain.Staff, date time.Time, now time.Time, reservations []domain.Reservation) []types.TimeString {
	if staff == nil || !staff.WorksOn(date.Weekday()) {
		return []types.TimeString{}
	}

	taken := make(map[types.TimeString]struct{})
	for i := range reservations {
		r := &reservations[i]
		if r.IsActive() && r.StaffID == staff.ID && domain.SameDay(r.Date, date) {
			taken[r.Time] = struct{}{}
		}
	}

	isToday := domain.SameDay(date, now)
	current := types.NewTimeString(now)

	slots := make([]types.TimeString, 0, len(staff.AvailableHours))
	for _, slot := range staff.AvailableHours {
		if isToday && !slot.IsAfter(current) {
			continue
		}
		if _, ok := taken[slot]; ok {
			continue
		}
		slots = append(slots, slot)
	}

	return slots
}

// IsSlotHeld возвращает true, если время занято активным бронированием мастера на дату
func IsSlotHeld(staffID string, date time.Time, t types.TimeString, reservations []domain.Reservation) bool {
	for i := range reservations {
		if reservations[i].Occupies(staffID, date, t) {
			return true
		}
	}
	return false
}

// Contains возвращает true, если время есть среди слотов
func Contains(slots []types.TimeString, t types.TimeString) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
