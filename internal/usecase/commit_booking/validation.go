package commit_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.StaffID) == "" {
		return fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано и имеет формат HH:MM
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.Services) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: too many services: %d", ErrInvalidInput, len(req.Services))
	}
	if len(req.Addons) > domain.MaxAddonsPerBooking {
		return fmt.Errorf("%w: too many addons: %d", ErrInvalidInput, len(req.Addons))
	}
	for _, s := range req.Services {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: service id is required", ErrInvalidInput)
		}
	}
	for _, a := range req.Addons {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("%w: addon id is required", ErrInvalidInput)
		}
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxClientEmailLength {
		return fmt.Errorf("%w: clientEmail is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, policy domain.BookingPolicy) error {
	// Проверяем, что дата не в прошлом
	if domain.IsDateInPast(bookingDate, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, bookingDate.Format(domain.DateFormat))
	}

	if !policy.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, policy.AdvanceBookingDays)
	if domain.DateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	return nil
}

// isCompleteService проверяет, что снимок услуги пригоден для расчета
func isCompleteService(s *domain.Service) bool {
	return s != nil && strings.TrimSpace(s.Name) != "" && s.Duration > 0 && s.Price >= 0
}

// isCompleteAddon проверяет, что снимок дополнительной услуги пригоден для расчета
func isCompleteAddon(a *domain.Addon) bool {
	return a != nil && strings.TrimSpace(a.Name) != "" && a.Duration > 0 && a.Price >= 0
}
