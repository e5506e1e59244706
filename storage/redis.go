package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "kamisado:"

type redisBackend struct {
	rdb *redis.Client
}

func openRedis(ctx context.Context, redisURL string) (*redisBackend, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisBackend{rdb: rdb}, nil
}

// A single SET replaces the whole record.
func (b *redisBackend) put(ctx context.Context, name string, data []byte) error {
	return b.rdb.Set(ctx, redisKeyPrefix+name, data, 0).Err()
}

func (b *redisBackend) get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := b.rdb.Get(ctx, redisKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *redisBackend) close() error {
	return b.rdb.Close()
}

func (b *redisBackend) String() string {
	return "redis " + b.rdb.Options().Addr
}
