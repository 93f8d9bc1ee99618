package resolve_availability

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// Request модель запроса на получение свободных слотов мастера
type Request struct {
	StaffID string
	Date    time.Time // Дата без времени
}

// Response модель ответа со списком свободных слотов
type Response struct {
	StaffID string
	Date    time.Time
	Slots   []types.TimeString // В порядке сетки мастера
}
