package catalog

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись каталога не найдена
	ErrEntryNotFound = errors.New("catalog.repository: entry not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("catalog.repository: staff not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации графика мастера
	ErrEncode = errors.New("catalog.repository: failed to encode schedule")
)
