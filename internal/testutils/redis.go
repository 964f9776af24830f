// Package testutils provides shared test helpers: in-memory Redis and pawn fixtures
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/Toakan-Network/RW-MassAffect/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	client, mr := CreateTestRedisServer(t)
	return client, mr.Close
}

// CreateTestRedisServer also returns the miniredis server so tests can
// inspect keys or fast-forward TTLs. The server closes with the test.
func CreateTestRedisServer(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}
