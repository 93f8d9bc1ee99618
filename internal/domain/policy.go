package domain

// BookingPolicy правила бронирования из конфигурации
type BookingPolicy struct {
	AdvanceBookingDays    int  // 0 = без ограничений
	AllowSnapshotFallback bool // разрешить снимок клиента для удаленной из каталога услуги
}

// HasAdvanceBookingLimit возвращает true, если есть ограничение на горизонт бронирования
func (p BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
