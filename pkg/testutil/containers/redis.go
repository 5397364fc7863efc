//go:build integration

// Package containers starts throwaway backends for integration tests.
package containers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// SnapshotRedis is a disposable Redis server for exercising the snapshot
// store. The container and client are released when t finishes.
type SnapshotRedis struct {
	URL    string
	Client *redis.Client
}

// StartSnapshotRedis runs a Redis container and returns a connected client.
func StartSnapshotRedis(t *testing.T) *SnapshotRedis {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, redisImage)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start snapshot redis")

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err, "snapshot redis connection string")

	opts, err := redis.ParseURL(url)
	require.NoError(t, err, "parse snapshot redis url")

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err(), "ping snapshot redis")

	return &SnapshotRedis{URL: url, Client: client}
}

// Reset drops the snapshot and every backup key so each test starts empty.
func (r *SnapshotRedis) Reset(ctx context.Context) error {
	return r.Client.FlushDB(ctx).Err()
}
