package notifier

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrClosed возвращается при публикации в закрытый издатель
	ErrClosed = errors.New("notifier: publisher closed")
)
