package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellerchat/internal/config"
	"sellerchat/internal/domain"
	"sellerchat/internal/messaging"
	"sellerchat/internal/observability"
)

const (
	queueName  = "chat.events.log"
	bindingKey = "#"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if !cfg.EventsEnabled() {
		slog.Error("RABBITMQ_URL is required")
		os.Exit(1)
	}

	slog.Info("starting event logger")

	connCtx, connCancel := context.WithTimeout(context.Background(), 60*time.Second)
	rmq, err := messaging.NewRabbitMQWithRetry(connCtx, cfg.RabbitMQURL)
	connCancel()
	if err != nil {
		slog.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rmq.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := messaging.NewEventConsumer(rmq, queueName, bindingKey, logEvent)

	slog.Info("event logger is ready",
		slog.String("queue", queueName),
		slog.String("exchange", messaging.EventsExchange))

	if err := consumer.Run(ctx); err != nil {
		slog.Error("event consumer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("event logger stopped")
}

func logEvent(ctx context.Context, event *domain.Event) error {
	observability.FromContext(ctx).Info("chat event",
		slog.String("id", event.ID),
		slog.String("type", event.Type),
		slog.String("chatroom_id", event.ChatroomID),
		slog.String("user_id", event.UserID),
		slog.String("seller_id", event.SellerID),
		slog.Int("content_length", len(event.Content)),
		slog.Time("timestamp", event.Timestamp))
	return nil
}
