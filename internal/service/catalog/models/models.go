package models

import (
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

// Request модели

// EntryRequest тело запроса на создание/обновление записи каталога.
// Набор используемых полей зависит от типа каталога.
type EntryRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`

	// Только для staff
	Role           string   `json:"role"`
	Avatar         string   `json:"avatar"`
	Specialty      string   `json:"specialty"`
	AvailableDays  []int    `json:"availableDays"`
	AvailableHours []string `json:"availableHours"`
}

// ToDomainService конвертирует request в услугу
func (r *EntryRequest) ToDomainService(id string) domain.Service {
	return domain.Service{
		ID:          id,
		Name:        r.Name,
		Price:       r.Price,
		Duration:    r.Duration,
		Description: r.Description,
		Icon:        r.Icon,
	}
}

// ToDomainAddon конвертирует request в дополнительную услугу
func (r *EntryRequest) ToDomainAddon(id string) domain.Addon {
	return domain.Addon{
		ID:          id,
		Name:        r.Name,
		Price:       r.Price,
		Duration:    r.Duration,
		Description: r.Description,
	}
}

// ToDomainStaff конвертирует request в мастера. Сетка часов должна быть провалидирована заранее
func (r *EntryRequest) ToDomainStaff(id string) domain.Staff {
	hours := make([]types.TimeString, 0, len(r.AvailableHours))
	for _, h := range r.AvailableHours {
		hours = append(hours, types.TimeString(h))
	}

	days := r.AvailableDays
	if days == nil {
		days = []int{}
	}

	return domain.Staff{
		ID:             id,
		Name:           r.Name,
		Role:           r.Role,
		Avatar:         r.Avatar,
		Specialty:      r.Specialty,
		AvailableDays:  days,
		AvailableHours: hours,
	}
}

// Response модели

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Avatar         string   `json:"avatar"`
	Specialty      string   `json:"specialty"`
	AvailableDays  []int    `json:"availableDays"`
	AvailableHours []string `json:"availableHours"`
}

// ListResponse ответ со списком записей одного типа каталога
type ListResponse struct {
	Kind  string      `json:"kind"`
	Items interface{} `json:"items"`
}

// EntryResponse ответ с сохраненной записью каталога
type EntryResponse struct {
	Kind  string      `json:"kind"`
	Entry interface{} `json:"entry"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель мастера в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}

	hours := make([]string, 0, len(s.AvailableHours))
	for _, h := range s.AvailableHours {
		hours = append(hours, h.String())
	}

	days := s.AvailableDays
	if days == nil {
		days = []int{}
	}

	return &StaffResponse{
		ID:             s.ID,
		Name:           s.Name,
		Role:           s.Role,
		Avatar:         s.Avatar,
		Specialty:      s.Specialty,
		AvailableDays:  days,
		AvailableHours: hours,
	}
}

// FromDomainStaffList конвертирует список мастеров в DTO
func FromDomainStaffList(staff []domain.Staff) []StaffResponse {
	result := make([]StaffResponse, 0, len(staff))
	for i := range staff {
		result = append(result, *FromDomainStaff(&staff[i]))
	}
	return result
}
