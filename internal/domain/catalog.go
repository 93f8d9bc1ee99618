package domain

// Service услуга каталога
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // минуты
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Addon дополнительная услуга. Та же форма, что и Service, без иконки
type Addon struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
}

// CatalogKind тип записи каталога
type CatalogKind string

const (
	KindService CatalogKind = "services"
	KindAddon   CatalogKind = "addons"
	KindStaff   CatalogKind = "staff"
)

// Valid проверяет, что тип каталога известен
func (k CatalogKind) Valid() bool {
	return k == KindService || k == KindAddon || k == KindStaff
}

// CatalogKinds все коллекции каталога в порядке начальной загрузки
var CatalogKinds = []CatalogKind{KindService, KindAddon, KindStaff}
