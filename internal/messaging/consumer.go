package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"sellerchat/internal/domain"
	"sellerchat/internal/observability"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventHandler processes one decoded event. Returning an error rejects the
// delivery without requeueing it.
type EventHandler func(ctx context.Context, event *domain.Event) error

// EventConsumer drains a queue bound to EventsExchange.
type EventConsumer struct {
	rmq        *RabbitMQ
	queue      string
	bindingKey string
	handle     EventHandler
}

func NewEventConsumer(rmq *RabbitMQ, queue, bindingKey string, handle EventHandler) *EventConsumer {
	return &EventConsumer{
		rmq:        rmq,
		queue:      queue,
		bindingKey: bindingKey,
		handle:     handle,
	}
}

// Run consumes until ctx is cancelled or the delivery channel closes.
func (c *EventConsumer) Run(ctx context.Context) error {
	if err := c.rmq.BindQueue(c.queue, c.bindingKey); err != nil {
		return err
	}

	msgs, err := c.rmq.ConsumeEvents(c.queue)
	if err != nil {
		return err
	}

	return c.consume(ctx, msgs)
}

var errDeliveriesClosed = errors.New("delivery channel closed")

func (c *EventConsumer) consume(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping event consumer", slog.String("queue", c.queue))
			return nil
		case msg, ok := <-msgs:
			if !ok {
				slog.Warn("event consumer channel closed", slog.String("queue", c.queue))
				return errDeliveriesClosed
			}
			c.process(ctx, msg)
		}
	}
}

func (c *EventConsumer) process(ctx context.Context, msg amqp.Delivery) {
	event, err := decodeEvent(msg.Body)
	if err != nil {
		slog.Error("dropping undecodable event",
			slog.String("error", err.Error()),
			slog.Int("body_size", len(msg.Body)))
		_ = msg.Nack(false, false)
		return
	}

	observability.EventsConsumedTotal.WithLabelValues(event.Type).Inc()

	if err := c.handle(ctx, event); err != nil {
		slog.Error("event handler failed",
			slog.String("type", event.Type),
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	if err := msg.Ack(false); err != nil {
		slog.Warn("failed to ack event", slog.String("event_id", event.ID), slog.String("error", err.Error()))
	}
}

func decodeEvent(body []byte) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Type == "" {
		return nil, errors.New("event has no type")
	}
	return &event, nil
}
