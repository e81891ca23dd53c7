package rendang_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/lukluk/rendang/internal/server"
	"github.com/lukluk/rendang/internal/store"
)

func startTestServer(t *testing.T) string {
	t.Helper()
	srv := server.New("127.0.0.1:0", store.New())
	require.NoError(t, srv.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx, time.Second)
	})
	return srv.Addr()
}

func TestEndToEndStringCommands(t *testing.T) {
	addr := startTestServer(t)
	client := redis.NewClient(&redis.Options{Addr: addr, Protocol: 2})
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "greeting", "hello", 0).Err())

	val, err := client.Get(ctx, "greeting").Result()
	require.NoError(t, err)
	require.Equal(t, "hello", val)

	_, err = client.Get(ctx, "missing").Result()
	require.ErrorIs(t, err, redis.Nil)
}

func TestEndToEndHashCommands(t *testing.T) {
	addr := startTestServer(t)
	client := redis.NewClient(&redis.Options{Addr: addr, Protocol: 2})
	defer client.Close()

	ctx := context.Background()
	// HSET replies with SimpleString OK here, not the real-Redis integer
	// count, so the generic Do (untyped reply) is used instead of the
	// typed HSet helper.
	require.NoError(t, client.Do(ctx, "HSET", "user:1", "name", "ada").Err())
	require.NoError(t, client.Do(ctx, "HSET", "user:1", "role", "admin").Err())

	name, err := client.HGet(ctx, "user:1", "name").Result()
	require.NoError(t, err)
	require.Equal(t, "ada", name)

	all, err := client.HGetAll(ctx, "user:1").Result()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "ada", "role": "admin"}, all)
}

func TestEndToEndUnknownCommandReturnsError(t *testing.T) {
	addr := startTestServer(t)
	client := redis.NewClient(&redis.Options{Addr: addr, Protocol: 2})
	defer client.Close()

	err := client.Ping(context.Background()).Err()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}
