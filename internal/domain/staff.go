package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// Staff мастер с индивидуальным графиком
type Staff struct {
	ID        string
	Name      string
	Role      string
	Avatar    string
	Specialty string

	// AvailableDays рабочие дни недели: 0 - воскресенье ... 6 - суббота
	AvailableDays []int
	// AvailableHours фиксированная сетка слотов на день
	AvailableHours []types.TimeString
}

// WorksOn возвращает true, если мастер работает в этот день недели
func (s *Staff) WorksOn(weekday time.Weekday) bool {
	for _, d := range s.AvailableDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// HasSlot возвращает true, если время входит в сетку мастера
func (s *Staff) HasSlot(t types.TimeString) bool {
	for _, h := range s.AvailableHours {
		if h == t {
			return true
		}
	}
	return false
}
