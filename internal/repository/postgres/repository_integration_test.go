//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"sellerchat/internal/domain"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := sql.Open("postgres", fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Eventually(t, func() bool { return db.PingContext(ctx) == nil }, 30*time.Second, 500*time.Millisecond)
	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestPostgresStore_Integration(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	chatrooms := NewChatroomRepository(db)
	messages := NewMessageRepository(db)
	sellers := NewSellerRepository(db)

	chatroom := &domain.Chatroom{UserID: "U", SellerID: "S", CreatedAt: time.Now().UTC()}
	require.NoError(t, chatrooms.Create(ctx, chatroom))

	t.Run("migrate_is_idempotent", func(t *testing.T) {
		assert.NoError(t, Migrate(ctx, db))
	})

	t.Run("unique_pair_constraint", func(t *testing.T) {
		err := chatrooms.Create(ctx, &domain.Chatroom{UserID: "U", SellerID: "S", CreatedAt: time.Now().UTC()})
		assert.ErrorIs(t, err, domain.ErrChatroomExists)

		reverse := &domain.Chatroom{UserID: "S", SellerID: "U", CreatedAt: time.Now().UTC()}
		assert.NoError(t, chatrooms.Create(ctx, reverse))
	})

	t.Run("membership", func(t *testing.T) {
		_, err := chatrooms.FindForMember(ctx, chatroom.ID, "S")
		assert.NoError(t, err)
		_, err = chatrooms.FindForMember(ctx, chatroom.ID, "X")
		assert.ErrorIs(t, err, domain.ErrChatroomNotFound)
	})

	t.Run("messages_in_insertion_order", func(t *testing.T) {
		for _, content := range []string{"one", "two", "three"} {
			require.NoError(t, messages.Create(ctx, &domain.Message{
				ChatroomID: chatroom.ID,
				UserID:     "U",
				Username:   "alice",
				Content:    content,
				Timestamp:  time.Now().UTC(),
			}))
		}

		got, err := messages.ListByChatroom(ctx, chatroom.ID, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "one", got[0].Content)
		assert.Equal(t, "two", got[1].Content)
	})

	t.Run("seller_directory", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `INSERT INTO sellers (seller_id, name) VALUES ($1, $2)`, "S", "Acme")
		require.NoError(t, err)

		seller, err := sellers.FindByID(ctx, "S")
		require.NoError(t, err)
		require.NotNil(t, seller.Name)
		assert.Equal(t, "Acme", *seller.Name)
		assert.Nil(t, seller.Image)

		_, err = sellers.FindByID(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrSellerNotFound)
	})
}
