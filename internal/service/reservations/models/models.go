package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// StatusAll значение фильтра, отключающее фильтрацию по статусу
const StatusAll = "ALL"

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListRequest запрос списка бронирований
type ListRequest struct {
	Status      *string `json:"status,omitempty"`      // ALL | PENDING | COMPLETED | CANCELLED
	ClientEmail *string `json:"clientEmail,omitempty"` // "мои записи" клиента
	StaffID     *string `json:"staffId,omitempty"`
	Date        *string `json:"date,omitempty"` // "2024-06-10"
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	var filter domain.ReservationFilter

	if r.Status != nil && !strings.EqualFold(*r.Status, StatusAll) {
		status, err := domain.ParseReservationStatus(strings.ToUpper(*r.Status))
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.ClientEmail != nil && strings.TrimSpace(*r.ClientEmail) != "" {
		filter.ClientEmail = r.ClientEmail
	}

	if r.StaffID != nil && *r.StaffID != "" {
		filter.StaffID = r.StaffID
	}

	if r.Date != nil && *r.Date != "" {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            string           `json:"id"`
	StaffID       string           `json:"staffId"`
	StaffName     string           `json:"staffName,omitempty"`
	Date          string           `json:"date"` // "2024-06-10"
	Time          string           `json:"time"` // "09:00"
	Services      []domain.Service `json:"services"`
	Addons        []domain.Addon   `json:"addons"`
	ClientName    string           `json:"clientName"`
	ClientEmail   string           `json:"clientEmail"`
	TotalPrice    float64          `json:"totalPrice"`
	TotalDuration int              `json:"totalDuration"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// StatsResponse сводка для панели администратора
type StatsResponse struct {
	TotalRevenue float64 `json:"totalRevenue"`
	Pending      int     `json:"pending"`
	Total        int     `json:"total"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	addons := r.Addons
	if addons == nil {
		addons = []domain.Addon{}
	}

	return &ReservationResponse{
		ID:            r.ID,
		StaffID:       r.StaffID,
		StaffName:     r.StaffName,
		Date:          r.Date.Format(domain.DateFormat),
		Time:          r.Time.String(),
		Services:      r.Services,
		Addons:        addons,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		TotalPrice:    r.TotalPrice,
		TotalDuration: r.TotalDuration,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for i := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(&reservations[i]))
	}

	return resp
}

// FromDomainStats конвертирует сводку в DTO
func FromDomainStats(s domain.ReservationStats) *StatsResponse {
	return &StatsResponse{
		TotalRevenue: s.TotalRevenue,
		Pending:      s.Pending,
		Total:        s.Total,
	}
}
