package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps carts in Redis as JSON values under shop:cart:<session>.
// Each write refreshes the TTL, so an abandoned cart expires on its own.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultCartTTL is how long an untouched cart survives in Redis.
const DefaultCartTTL = 7 * 24 * time.Hour

// NewRedisStore returns a Redis-backed session cart store.
func NewRedisStore(addr string, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &redisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func key(sessionID string) string {
	return fmt.Sprintf("shop:cart:%s", sessionID)
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: redis get %q: %w", sessionID, err)
	}

	c := New()
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("cart: decode stored cart %q: %w", sessionID, err)
	}
	return c, nil
}

func (s *redisStore) Put(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart: encode cart %q: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart: redis set %q: %w", sessionID, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("cart: redis del %q: %w", sessionID, err)
	}
	return nil
}
