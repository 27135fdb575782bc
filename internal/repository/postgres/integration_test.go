package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/messagely/internal/database"
	"github.com/vedran77/messagely/internal/domain"
)

// TestIntegration runs the repositories against a live PostgreSQL.
func TestIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true and DATABASE_URL to run this integration test")
	}

	_ = godotenv.Load("../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	require.NotEmpty(t, dbURL, "DATABASE_URL is required")

	ctx := context.Background()
	pool, err := database.Connect(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.ApplySchema(ctx, pool))

	users := NewUserRepo(pool)
	messages := NewMessageRepo(pool)

	suffix := time.Now().UnixNano()
	alice := fmt.Sprintf("alice_%d", suffix)
	bob := fmt.Sprintf("bob_%d", suffix)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM messages WHERE from_username = ANY($1) OR to_username = ANY($1)`, []string{alice, bob})
		pool.Exec(context.Background(), `DELETE FROM users WHERE username = ANY($1)`, []string{alice, bob})
	})

	for _, name := range []string{alice, bob} {
		_, err := users.Create(ctx, &domain.User{
			Username: name, PasswordHash: "digest-" + name,
			FirstName: "First", LastName: name, Phone: "555-0100",
		})
		require.NoError(t, err)
	}

	t.Run("duplicate leaves original row", func(t *testing.T) {
		_, err := users.Create(ctx, &domain.User{Username: alice, PasswordHash: "other", FirstName: "X", LastName: "Y", Phone: "555-0199"})
		assert.ErrorIs(t, err, domain.ErrConflict)

		hash, err := users.GetPasswordHash(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, "digest-"+alice, hash)
	})

	t.Run("login stamp is monotonic", func(t *testing.T) {
		first, err := users.TouchLastLogin(ctx, alice)
		require.NoError(t, err)
		second, err := users.TouchLastLogin(ctx, alice)
		require.NoError(t, err)
		assert.False(t, second.LastLoginAt.Before(first.LastLoginAt))

		_, err = pool.Exec(ctx, `UPDATE users SET last_login_at = current_timestamp + interval '1 hour' WHERE username = $1`, alice)
		require.NoError(t, err)
		future, err := users.TouchLastLogin(ctx, alice)
		require.NoError(t, err)
		assert.True(t, future.LastLoginAt.After(second.LastLoginAt.Add(30*time.Minute)))
	})

	t.Run("message round trip", func(t *testing.T) {
		from, err := messages.ListFrom(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, from)

		_, err = pool.Exec(ctx, `INSERT INTO messages (from_username, to_username, body) VALUES ($1, $2, 'hi')`, alice, bob)
		require.NoError(t, err)

		from, err = messages.ListFrom(ctx, alice)
		require.NoError(t, err)
		require.Len(t, from, 1)
		assert.Equal(t, bob, from[0].ToUser.Username)

		to, err := messages.ListTo(ctx, bob)
		require.NoError(t, err)
		require.Len(t, to, 1)
		assert.Equal(t, alice, to[0].FromUser.Username)
		assert.Equal(t, from[0].ID, to[0].ID)
	})
}
