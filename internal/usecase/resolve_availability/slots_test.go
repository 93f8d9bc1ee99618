package resolve_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

func monToSat(hours ...types.TimeString) *domain.Staff {
	return &domain.Staff{
		ID:             "b1",
		AvailableDays:  []int{1, 2, 3, 4, 5, 6},
		AvailableHours: hours,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolveSlots(t *testing.T) {
	monday := day(2024, 6, 10)
	sunday := day(2024, 6, 9)
	earlier := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)

	tests := []struct {
		name         string
		staff        *domain.Staff
		date         time.Time
		now          time.Time
		reservations []domain.Reservation
		want         []types.TimeString
	}{
		{
			name:  "future date returns full grid",
			staff: monToSat("09:00", "10:00", "14:00"),
			date:  monday,
			now:   earlier,
			want:  []types.TimeString{"09:00", "10:00", "14:00"},
		},
		{
			name:  "non working weekday",
			staff: monToSat("09:00", "10:00"),
			date:  sunday,
			now:   earlier,
			want:  []types.TimeString{},
		},
		{
			name:  "today keeps only slots after now",
			staff: monToSat("09:00", "10:00", "14:00"),
			date:  monday,
			now:   time.Date(2024, 6, 10, 10, 15, 0, 0, time.Local),
			want:  []types.TimeString{"14:00"},
		},
		{
			name:  "slot equal to now is excluded",
			staff: monToSat("09:00", "10:00", "14:00"),
			date:  monday,
			now:   time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local),
			want:  []types.TimeString{"14:00"},
		},
		{
			name:  "active reservation removes slot",
			staff: monToSat("09:00", "10:00"),
			date:  monday,
			now:   earlier,
			reservations: []domain.Reservation{
				{StaffID: "b1", Date: monday, Time: "09:00", Status: domain.StatusPending},
			},
			want: []types.TimeString{"10:00"},
		},
		{
			name:  "completed reservation still holds slot",
			staff: monToSat("09:00", "10:00"),
			date:  monday,
			now:   earlier,
			reservations: []domain.Reservation{
				{StaffID: "b1", Date: monday, Time: "10:00", Status: domain.StatusCompleted},
			},
			want: []types.TimeString{"09:00"},
		},
		{
			name:  "cancelled reservation frees slot",
			staff: monToSat("09:00", "10:00"),
			date:  monday,
			now:   earlier,
			reservations: []domain.Reservation{
				{StaffID: "b1", Date: monday, Time: "09:00", Status: domain.StatusCancelled},
			},
			want: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:  "reservations of other staff or date are ignored",
			staff: monToSat("09:00", "10:00"),
			date:  monday,
			now:   earlier,
			reservations: []domain.Reservation{
				{StaffID: "b2", Date: monday, Time: "09:00", Status: domain.StatusPending},
				{StaffID: "b1", Date: day(2024, 6, 11), Time: "10:00", Status: domain.StatusPending},
			},
			want: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:  "grid order and duplicates are kept",
			staff: monToSat("14:00", "09:00", "14:00"),
			date:  monday,
			now:   earlier,
			want:  []types.TimeString{"14:00", "09:00", "14:00"},
		},
		{
			name:  "empty grid",
			staff: monToSat(),
			date:  monday,
			now:   earlier,
			want:  []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSlots(tt.staff, tt.date, tt.now, tt.reservations)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSlots_ResultIsSubsequenceOfGrid(t *testing.T) {
	staff := &domain.Staff{
		ID:             "b1",
		AvailableDays:  []int{0, 1, 2, 3, 4, 5, 6},
		AvailableHours: []types.TimeString{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00"},
	}
	date := day(2024, 6, 12)
	reservations := []domain.Reservation{
		{StaffID: "b1", Date: date, Time: "11:00", Status: domain.StatusPending},
		{StaffID: "b1", Date: date, Time: "14:00", Status: domain.StatusCompleted},
	}

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2024, 6, 12, hour, 30, 0, 0, time.Local)
		got := ResolveSlots(staff, date, now, reservations)

		i := 0
		for _, slot := range got {
			for i < len(staff.AvailableHours) && staff.AvailableHours[i] != slot {
				i++
			}
			assert.Less(t, i, len(staff.AvailableHours), "slot %s out of grid order", slot)
			assert.True(t, slot.IsAfter(types.NewTimeString(now)))
			assert.False(t, IsSlotHeld("b1", date, slot, reservations))
			i++
		}
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.Local)

	assert.NoError(t, ValidateDate(day(2024, 6, 10), now, domain.BookingPolicy{}))
	assert.ErrorIs(t, ValidateDate(day(2024, 6, 9), now, domain.BookingPolicy{}), ErrInvalidDate)
	assert.NoError(t, ValidateDate(day(2025, 6, 9), now, domain.BookingPolicy{}))

	assert.NoError(t, ValidateDate(day(2024, 6, 17), now, domain.BookingPolicy{AdvanceBookingDays: 7}))
	assert.ErrorIs(t, ValidateDate(day(2024, 6, 18), now, domain.BookingPolicy{AdvanceBookingDays: 7}), ErrDateTooFarInFuture)
}
