package commit_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	commitBooking "github.com/m04kA/SMC-BarberScheduler/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// CommitBookingRequest HTTP request model
type CommitBookingRequest struct {
	StaffID     string            `json:"staffId"`
	Date        string            `json:"date"` // "2024-06-10"
	Time        string            `json:"time"` // "10:00"
	Services    []SelectedService `json:"services"`
	Addons      []SelectedAddon   `json:"addons,omitempty"`
	ClientName  string            `json:"clientName"`
	ClientEmail string            `json:"clientEmail"`
}

// SelectedService выбранная услуга. Поля кроме id - снимок каталога, который видел клиент
type SelectedService struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Icon        string   `json:"icon,omitempty"`
}

// SelectedAddon выбранная дополнительная услуга
type SelectedAddon struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            string           `json:"id"`
	StaffID       string           `json:"staffId"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	Services      []domain.Service `json:"services"`
	Addons        []domain.Addon   `json:"addons"`
	ClientName    string           `json:"clientName"`
	ClientEmail   string           `json:"clientEmail"`
	TotalPrice    float64          `json:"totalPrice"`
	TotalDuration int              `json:"totalDuration"`
	Status        string           `json:"status"`
	CreatedAt     string           `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CommitBookingRequest) ToUseCaseRequest() (*commitBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	services := make([]commitBooking.SelectedService, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, commitBooking.SelectedService{ID: s.ID, Snapshot: s.snapshot()})
	}

	addons := make([]commitBooking.SelectedAddon, 0, len(r.Addons))
	for _, a := range r.Addons {
		addons = append(addons, commitBooking.SelectedAddon{ID: a.ID, Snapshot: a.snapshot()})
	}

	return &commitBooking.Request{
		StaffID:     r.StaffID,
		Date:        date,
		Time:        slot,
		Services:    services,
		Addons:      addons,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
	}, nil
}

// snapshot возвращает nil, если клиент прислал только id
func (s SelectedService) snapshot() *domain.Service {
	if s.Name == "" && s.Price == nil && s.Duration == 0 {
		return nil
	}
	snap := &domain.Service{
		ID:          s.ID,
		Name:        s.Name,
		Duration:    s.Duration,
		Description: s.Description,
		Icon:        s.Icon,
	}
	if s.Price != nil {
		snap.Price = *s.Price
	}
	return snap
}

func (a SelectedAddon) snapshot() *domain.Addon {
	if a.Name == "" && a.Price == nil && a.Duration == 0 {
		return nil
	}
	snap := &domain.Addon{
		ID:          a.ID,
		Name:        a.Name,
		Duration:    a.Duration,
		Description: a.Description,
	}
	if a.Price != nil {
		snap.Price = *a.Price
	}
	return snap
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *ReservationResponse {
	addons := resp.Addons
	if addons == nil {
		addons = []domain.Addon{}
	}

	return &ReservationResponse{
		ID:            resp.ID,
		StaffID:       resp.StaffID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		Services:      resp.Services,
		Addons:        addons,
		ClientName:    resp.ClientName,
		ClientEmail:   resp.ClientEmail,
		TotalPrice:    resp.TotalPrice,
		TotalDuration: resp.TotalDuration,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
