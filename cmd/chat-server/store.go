package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sellerchat/internal/config"
	"sellerchat/internal/domain"
	"sellerchat/internal/handler"
	"sellerchat/internal/observability"
	"sellerchat/internal/repository/mongodb"
	"sellerchat/internal/repository/postgres"
)

// store bundles the repositories of the selected backend with its readiness
// check and teardown.
type store struct {
	chatrooms domain.ChatroomRepository
	messages  domain.MessageRepository
	sellers   domain.SellerRepository
	check     handler.Check
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return openMongoStore(ctx, cfg)
	default:
		return openPostgresStore(ctx, cfg)
	}
}

func openPostgresStore(ctx context.Context, cfg *config.Config) (*store, error) {
	db, err := config.NewPostgresConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to postgresql")

	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	statsCtx, stopStats := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-statsCtx.Done():
				return
			case <-ticker.C:
				observability.RecordDBStats(db.Stats())
			}
		}
	}()

	return &store{
		chatrooms: postgres.NewChatroomRepository(db),
		messages:  postgres.NewMessageRepository(db),
		sellers:   postgres.NewSellerRepository(db),
		check:     handler.SQLCheck(db),
		close: func() {
			stopStats()
			db.Close()
		},
	}, nil
}

func openMongoStore(ctx context.Context, cfg *config.Config) (*store, error) {
	client, err := config.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to mongodb", slog.String("database", cfg.MongoDatabase))

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return &store{
		chatrooms: mongodb.NewChatroomRepository(db),
		messages:  mongodb.NewMessageRepository(db),
		sellers:   mongodb.NewSellerRepository(db),
		check:     handler.MongoCheck(client),
		close: func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				slog.Error("mongo disconnect failed", slog.String("error", err.Error()))
			}
		},
	}, nil
}
