package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnix/learnix-portal/internal/ports"
	"github.com/learnix/learnix-portal/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	rec := ports.SessionRecord{
		ID:        "test-session-1",
		Token:     "tok123",
		User:      `{"id":1,"name":"A","email":"a@b.com","role":"STUDENT"}`,
		Email:     "a@b.com",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	err := store.Save(ctx, rec)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, retrieved.ID)
	assert.Equal(t, rec.Token, retrieved.Token)
	assert.Equal(t, rec.User, retrieved.User)
	assert.Equal(t, rec.Email, retrieved.Email)
	assert.WithinDuration(t, rec.ExpiresAt, retrieved.ExpiresAt, 2*time.Second)
}

func TestSessionStore_GetMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), ports.SessionRecord{
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestSessionStore_SaveExpired(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), ports.SessionRecord{
		ID:        "expired",
		Token:     "tok",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	assert.Error(t, err)
}

func TestSessionStore_DeleteIsIdempotent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	rec := ports.SessionRecord{
		ID:        "delete-me",
		Token:     "tok",
		User:      `{"id":2,"role":"TEACHER"}`,
		Email:     "t@b.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, rec))

	require.NoError(t, store.Delete(ctx, "delete-me"))
	_, err := store.Get(ctx, "delete-me")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again (and deleting something that never existed) is a no-op.
	assert.NoError(t, store.Delete(ctx, "delete-me"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "portal:sess:")
	ctx := context.Background()

	rec := ports.SessionRecord{
		ID:        "prefixed",
		Token:     "tok",
		User:      `{"id":3,"role":"ADMIN"}`,
		Email:     "adm@b.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, rec))

	exists, err := client.Exists(ctx, "portal:sess:prefixed").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
