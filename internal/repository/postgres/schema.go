package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS chatrooms (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT NOT NULL,
		seller_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT chatrooms_user_seller_key UNIQUE (user_id, seller_id),
		CONSTRAINT chatrooms_not_self CHECK (user_id <> seller_id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		chatroom_id UUID NOT NULL REFERENCES chatrooms (id),
		user_id TEXT NOT NULL,
		username TEXT NOT NULL,
		content TEXT NOT NULL,
		sent_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS messages_chatroom_id_idx ON messages (chatroom_id, id)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		seller_id TEXT PRIMARY KEY,
		name TEXT,
		image TEXT
	)`,
}

// Migrate creates the chat tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	err := NewTxManager(db).WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("postgres schema ready", slog.Int("statements", len(schemaStatements)))
	return nil
}
