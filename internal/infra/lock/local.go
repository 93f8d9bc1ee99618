package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalLocker блокировки по ключу внутри одного процесса
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	timeout time.Duration
}

type localEntry struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker создает блокировщик с таймаутом ожидания
func NewLocalLocker(timeout time.Duration) *LocalLocker {
	return &LocalLocker{
		entries: make(map[string]*localEntry),
		timeout: timeout,
	}
}

// Acquire ждет освобождения ключа не дольше таймаута или до отмены ctx
func (l *LocalLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	entry := l.ref(key)

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(key)
		return nil, ctx.Err()
	case <-timer.C:
		l.unref(key)
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.unref(key)
		})
	}, nil
}

func (l *LocalLocker) ref(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}
