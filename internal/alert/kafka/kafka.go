// Package kafka publishes alerts as JSON to a Kafka topic, keyed by the
// alert's dedup key.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/notify"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Producer struct {
	w   writer
	now func() time.Time
}

func New(brokers []string, topic string) *Producer {
	return newProducer(&kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
	})
}

func newProducer(w writer) *Producer {
	return &Producer{w: w, now: time.Now}
}

func (p *Producer) Name() string { return "kafka" }

func (p *Producer) Send(ctx context.Context, a notify.Alert) error {
	body, err := json.Marshal(alert.NewMessage(a, p.now()))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(a.Key),
		Value: body,
		Headers: []kafkago.Header{
			{Key: "appointment_id", Value: []byte(a.AppointmentID)},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.w.Close()
}
