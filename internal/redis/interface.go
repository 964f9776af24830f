package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories are written against.
// redis.UniversalClient satisfies it, as does a miniredis-backed client in tests.
type Client interface {
	redis.UniversalClient
}
