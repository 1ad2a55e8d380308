// Package adapter holds infrastructure implementations of the domain ports.
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quizcraft/internal/domain"
)

// RedisCacheAdapter implements domain.Cache on go-redis.
type RedisCacheAdapter struct {
	client *redis.Client
}

func NewRedisCacheAdapter(client *redis.Client) *RedisCacheAdapter {
	return &RedisCacheAdapter{client: client}
}

func (a *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	value, err := a.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return value, nil
}

func (a *RedisCacheAdapter) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return a.client.Set(ctx, key, value, ttl).Err()
}

func (a *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

var _ domain.Cache = (*RedisCacheAdapter)(nil)
