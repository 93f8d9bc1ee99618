package catalog

import "errors"

var (
	// ErrUnknownKind возвращается для неизвестного типа каталога
	ErrUnknownKind = errors.New("unknown catalog kind")

	// ErrEntryNotFound возвращается, когда запись каталога не найдена
	ErrEntryNotFound = errors.New("catalog entry not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
