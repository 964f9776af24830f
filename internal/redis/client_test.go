package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/redis"
)

func TestNewClient(t *testing.T) {
	t.Run("requires endpoint", func(t *testing.T) {
		client, err := redis.NewClient("", nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Nil(t, client)
	})

	t.Run("connects to server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := redis.NewClient(mr.Addr(), &redis.Options{PoolSize: 2})
		require.NoError(t, err)
		defer func() { _ = client.Close() }()

		assert.NoError(t, client.Ping(context.Background()).Err())
	})
}
