package commit_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена и снимок недоступен
	ErrServiceNotFound = errors.New("service not found")

	// ErrAddonNotFound возвращается, когда дополнительная услуга не найдена и снимок недоступен
	ErrAddonNotFound = errors.New("addon not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда время не входит в график мастера на эту дату
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrBookingConflict возвращается, когда слот уже занят другим бронированием
	ErrBookingConflict = errors.New("slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
