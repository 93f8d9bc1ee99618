package resolve_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.StaffID) == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// ValidateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func ValidateDate(requestDate time.Time, now time.Time, policy domain.BookingPolicy) error {
	if domain.IsDateInPast(requestDate, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, requestDate.Format(domain.DateFormat))
	}

	if !policy.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, policy.AdvanceBookingDays)
	if domain.DateOnly(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	return nil
}
