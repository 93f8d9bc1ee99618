package get_available_slots

import (
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-BarberScheduler/internal/usecase/resolve_availability"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StaffID string   `json:"staffId"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		StaffID: resp.StaffID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(staffID, dateStr string) (*resolveAvailability.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &resolveAvailability.Request{
		StaffID: staffID,
		Date:    date,
	}, nil
}
