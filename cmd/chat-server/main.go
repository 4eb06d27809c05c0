package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellerchat/api"
	"sellerchat/internal/config"
	"sellerchat/internal/domain"
	"sellerchat/internal/handler"
	"sellerchat/internal/messaging"
	"sellerchat/internal/middleware"
	"sellerchat/internal/observability"
	"sellerchat/internal/security"
	"sellerchat/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	slog.Info("starting chat server",
		slog.String("environment", cfg.Environment),
		slog.String("store", cfg.StoreDriver))

	connCtx, connCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer connCancel()

	st, err := openStore(connCtx, cfg)
	if err != nil {
		slog.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.close()

	checks := map[string]handler.Check{"store": st.check}

	var publisher domain.EventPublisher
	if cfg.EventsEnabled() {
		rmq, err := messaging.NewRabbitMQWithRetry(connCtx, cfg.RabbitMQURL)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rmq.Close()

		publisher = rmq
		checks["broker"] = handler.BrokerCheck(rmq)
		slog.Info("chat events enabled", slog.String("exchange", messaging.EventsExchange))
	} else {
		slog.Info("RABBITMQ_URL not set, chat events disabled")
	}

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	chatService := service.NewChatService(st.chatrooms, st.messages, st.sellers, publisher)
	chatroomHandler := handler.NewChatroomHandler(chatService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.Ready(checks))
	r.Handle("/metrics", promhttp.Handler())

	apiLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())
		r.Use(middleware.Auth(tokens))

		if cfg.OpenAPIValidation {
			validator, err := middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig(api.OpenAPISpec))
			if err != nil {
				slog.Error("failed to load openapi document", slog.String("error", err.Error()))
				os.Exit(1)
			}
			r.Use(validator)
		}

		chatroomHandler.Routes(r)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("chat server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	cancel()

	slog.Info("server stopped gracefully")
}
