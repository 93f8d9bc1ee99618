package catalog

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

const maxEntryIDLength = 64

func parseKind(kind string) (domain.CatalogKind, error) {
	k := domain.CatalogKind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return k, nil
}

func validateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if len(id) > maxEntryIDLength {
		return fmt.Errorf("%w: id must not exceed %d characters", ErrInvalidInput, maxEntryIDLength)
	}
	return nil
}

// validateOffering проверяет поля услуги или дополнительной услуги
func validateOffering(req *models.EntryRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

func validateStaff(req *models.EntryRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	seenDays := make(map[int]struct{}, len(req.AvailableDays))
	for _, d := range req.AvailableDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: available day %d must be within 0-6", ErrInvalidInput, d)
		}
		if _, ok := seenDays[d]; ok {
			return fmt.Errorf("%w: duplicate available day %d", ErrInvalidInput, d)
		}
		seenDays[d] = struct{}{}
	}

	seenHours := make(map[string]struct{}, len(req.AvailableHours))
	for _, h := range req.AvailableHours {
		if _, err := types.NewTimeStringFromString(h); err != nil {
			return fmt.Errorf("%w: available hour %q: %v", ErrInvalidInput, h, err)
		}
		if _, ok := seenHours[h]; ok {
			return fmt.Errorf("%w: duplicate available hour %s", ErrInvalidInput, h)
		}
		seenHours[h] = struct{}{}
	}

	return nil
}
