package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/notify"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp091.Publishing
	err           error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestPublisher_Send(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "salon.alerts", "appointment.reminder")
	p.now = func() time.Time { return time.Date(2024, 6, 1, 13, 45, 0, 0, time.UTC) }

	a := notify.Alert{Key: "a2:15", AppointmentID: "a2", Offset: 15, Title: "Appointment in 15 min: Ana", Body: "Pintura Completa scheduled for 14:00."}
	require.NoError(t, p.Send(context.Background(), a))

	assert.Equal(t, "salon.alerts", ch.exchange)
	assert.Equal(t, "appointment.reminder", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "a2:15", ch.msg.MessageId)

	var got alert.Message
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, alert.NewMessage(a, p.now()), got)
}

func TestPublisher_SendError(t *testing.T) {
	p := newPublisher(&fakeChannel{err: errors.New("channel closed")}, "x", "k")
	assert.ErrorContains(t, p.Send(context.Background(), notify.Alert{Key: "a:0"}), "channel closed")
	assert.NoError(t, p.Close())
}
