// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Sender implements notify.Sender. Messages are keyed by order ID so every
// event of one order lands on the same partition, in order.
type Sender struct {
	writer *kafka.Writer
}

// NewSender writes to topic on the comma-separated brokers.
func NewSender(brokers, topic string) *Sender {
	return &Sender{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

// Send publishes event and blocks until every in-sync replica has acknowledged it.
func (s *Sender) Send(ctx context.Context, event ports.Event) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	if err = s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", event.Type, event.OrderID, err)
	}
	return nil
}

// Close flushes pending writes and closes broker connections.
func (s *Sender) Close() error {
	return s.writer.Close()
}

// NewMessage encodes event as JSON keyed by its order ID.
func NewMessage(event ports.Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}, nil
}
