package commit_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// Request модель запроса на фиксацию бронирования
type Request struct {
	StaffID     string
	Date        time.Time        // Дата бронирования (без времени)
	Time        types.TimeString // Время слота (например, "10:00")
	Services    []SelectedService
	Addons      []SelectedAddon
	ClientName  string
	ClientEmail string
}

// SelectedService выбранная услуга. Snapshot - копия записи каталога, которую видел клиент
type SelectedService struct {
	ID       string
	Snapshot *domain.Service
}

// SelectedAddon выбранная дополнительная услуга
type SelectedAddon struct {
	ID       string
	Snapshot *domain.Addon
}

// Response модель ответа с зафиксированным бронированием
type Response struct {
	ID            string
	StaffID       string
	Date          time.Time
	Time          types.TimeString
	Services      []domain.Service
	Addons        []domain.Addon
	ClientName    string
	ClientEmail   string
	TotalPrice    float64
	TotalDuration int
	Status        string
	CreatedAt     time.Time
}
