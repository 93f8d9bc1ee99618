package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	messages []published
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "barber.reservations", nopLogger{})

	reservation := &domain.Reservation{
		ID:          "r1",
		StaffID:     "b1",
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local),
		Time:        "09:00",
		Status:      domain.StatusPending,
		ClientEmail: "joao@example.com",
		TotalPrice:  60,
	}
	event := NewReservationEvent(EventReservationCreated, reservation, time.Now())

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.messages, 1)

	got := ch.messages[0]
	assert.Equal(t, "barber.reservations", got.exchange)
	assert.Equal(t, EventReservationCreated, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "r1", got.msg.MessageId)

	var decoded Event
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, "2024-06-10", decoded.Date)
	assert.Equal(t, "09:00", decoded.Time)
	assert.Equal(t, "PENDING", decoded.Status)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	p := newPublisher(&fakeChannel{err: errors.New("channel closed")}, "x", nopLogger{})

	err := p.Publish(context.Background(), Event{Type: EventStaffDeleted})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "x", nopLogger{})

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)

	err := p.Publish(context.Background(), Event{Type: EventReservationDeleted})
	assert.ErrorIs(t, err, ErrClosed)
}
