package pawn

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	redisclient "github.com/Toakan-Network/RW-MassAffect/internal/redis"
)

const (
	pawnKeyPrefix = "pawn:snapshot:"

	errPawnIDEmpty = "pawn ID cannot be empty"
	errPawnNil     = "pawn cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis pawn repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed pawn repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPawnIDEmpty)
	}

	result, err := r.client.Get(ctx, GetKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("pawn %s not found", input.ID).WithMeta("pawn_id", input.ID)
		}
		slog.ErrorContext(ctx, "failed to get pawn from Redis", "pawn_id", input.ID, "error", err)
		return nil, errors.Wrapf(err, "failed to get pawn %s", input.ID)
	}

	var p pawn.Pawn
	if err := json.Unmarshal([]byte(result), &p); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal pawn %s", input.ID)
	}

	return &GetOutput{Pawn: &p}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Pawn == nil {
		return nil, errors.InvalidArgument(errPawnNil)
	}
	if input.Pawn.ID == "" {
		return nil, errors.InvalidArgument(errPawnIDEmpty)
	}

	data, err := json.Marshal(input.Pawn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal pawn %s", input.Pawn.ID)
	}

	if err := r.client.Set(ctx, GetKey(input.Pawn.ID), data, input.TTL).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to store pawn in Redis", "pawn_id", input.Pawn.ID, "error", err)
		return nil, errors.Wrapf(err, "failed to store pawn %s", input.Pawn.ID)
	}

	slog.DebugContext(ctx, "stored pawn snapshot", "pawn_id", input.Pawn.ID, "ttl", input.TTL)

	return &PutOutput{Pawn: input.Pawn}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPawnIDEmpty)
	}

	deleted, err := r.client.Del(ctx, GetKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete pawn %s", input.ID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("pawn %s not found", input.ID).WithMeta("pawn_id", input.ID)
	}

	return &DeleteOutput{}, nil
}

// GetKey returns the Redis key for a pawn snapshot
func GetKey(id string) string {
	return pawnKeyPrefix + id
}
