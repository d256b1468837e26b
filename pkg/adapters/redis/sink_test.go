package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/redis"
	"github.com/cgspeck/gen-systemd-svcs/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisSink_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunUnitSinkContract(t, redis.NewFromClient(client))
}

func TestRedisSink_StoresInHash(t *testing.T) {
	mr, client := newClient(t)
	sink := redis.NewFromClient(client, redis.WithKey("fleet:web"))

	require.NoError(t, sink.Ping(context.Background()))
	require.NoError(t, sink.Write(context.Background(), "web.service", []byte("[Unit]\n")))

	assert.Equal(t, "[Unit]\n", mr.HGet("fleet:web", "web.service"))
	assert.Equal(t, "redis://fleet:web#web.service", sink.Location("web.service"))
}

func TestRedisSink_TTL(t *testing.T) {
	mr, client := newClient(t)
	sink := redis.NewFromClient(client, redis.WithTTL(time.Minute))

	require.NoError(t, sink.Write(context.Background(), "a.service", []byte("a")))
	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultKey))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(redis.DefaultKey))
}

func TestRedisSink_Unreachable(t *testing.T) {
	mr, client := newClient(t)
	mr.Close()

	sink := redis.NewFromClient(client)
	assert.Error(t, sink.Ping(context.Background()))
	assert.Error(t, sink.Write(context.Background(), "a.service", []byte("a")))
}
