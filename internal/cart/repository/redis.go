package repository

import (
	"context"
	"errors"
	"time"

	"github.com/donarib/storefront-service/internal/cart"
	"github.com/donarib/storefront-service/internal/pkg/cache"
)

const keyPrefix = "cart:"

type RedisStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

// NewRedisStore keeps each cart as JSON under cart:{id}. Every save refreshes
// the TTL, so idle carts expire.
func NewRedisStore(client *cache.RedisClient, ttl time.Duration) cart.Store {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*cart.Cart, error) {
	var c cart.Cart
	if err := s.client.GetJSON(ctx, keyPrefix+id, &c); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}
	if c.Lines == nil {
		c.Lines = []cart.Line{}
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *cart.Cart) error {
	return s.client.SetJSON(ctx, keyPrefix+c.ID, c, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Client.Del(ctx, keyPrefix+id).Err()
}
