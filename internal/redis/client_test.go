package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&Config{
		Address:  mr.Addr(),
		Password: "",
		DB:       0,
		PoolSize: 10,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewClient(&Config{Address: "127.0.0.1:1"})
		assert.Error(t, err)
	})

	t.Run("connects and pings", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		assert.NoError(t, client.Health())
	})
}

func TestSetGetJSON(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	type doc struct {
		Title    string `json:"title"`
		Messages int    `json:"messages"`
	}

	err := client.Set(ctx, "session:abc", doc{Title: "Pricing card", Messages: 4}, time.Minute)
	require.NoError(t, err)

	var got doc
	require.NoError(t, client.GetJSON(ctx, "session:abc", &got))
	assert.Equal(t, "Pricing card", got.Title)
	assert.Equal(t, 4, got.Messages)
}

func TestGetJSONMiss(t *testing.T) {
	client, _ := setupTestRedis(t)

	var dest map[string]interface{}
	err := client.GetJSON(context.Background(), "session:missing", &dest)
	require.Error(t, err)
	assert.True(t, IsMiss(err))
}

func TestSetStringAndBytes(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k1", "plain", time.Minute))
	require.NoError(t, client.Set(ctx, "k2", []byte("raw"), time.Minute))

	v1, err := client.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "plain", v1)

	v2, err := client.Get(ctx, "k2")
	require.NoError(t, err)
	assert.Equal(t, "raw", v2)
}

func TestDeleteAndExists(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session:gone", "x", time.Minute))

	exists, err := client.Exists(ctx, "session:gone")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, client.Delete(ctx, "session:gone"))

	exists, err = client.Exists(ctx, "session:gone")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTTLExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session:ttl", "x", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := client.Get(ctx, "session:ttl")
	assert.True(t, IsMiss(err))
}

func TestCheckRateLimit(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	limit := 3
	window := time.Minute

	for i := 0; i < limit; i++ {
		allowed, count, err := client.CheckRateLimit(ctx, "rl:user1", limit, window)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, i, count)
	}

	allowed, count, err := client.CheckRateLimit(ctx, "rl:user1", limit, window)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.GreaterOrEqual(t, count, limit)
}
