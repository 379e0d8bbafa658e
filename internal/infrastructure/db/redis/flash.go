package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playverse/gamestore/internal/core/domain"
)

const defaultFlashTTL = 10 * time.Minute

// FlashStore queues flash messages in a Redis list per browser.
// Key format: flash:<cookie id>
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlashStore creates a FlashStore whose queues expire after ttl of
// inactivity.
func NewFlashStore(client *redis.Client, ttl time.Duration) *FlashStore {
	if ttl <= 0 {
		ttl = defaultFlashTTL
	}
	return &FlashStore{client: client, ttl: ttl}
}

// Push appends msgs to the queue and refreshes its expiry.
func (s *FlashStore) Push(ctx context.Context, key string, msgs ...domain.Flash) error {
	if len(msgs) == 0 {
		return nil
	}
	vals := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("flash encode: %w", err)
		}
		vals = append(vals, b)
	}

	k := s.key(key)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, k, vals...)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("flash push: %w", err)
	}
	return nil
}

// Pop returns the queued messages in insertion order and clears the queue.
func (s *FlashStore) Pop(ctx context.Context, key string) ([]domain.Flash, error) {
	k := s.key(key)
	pipe := s.client.TxPipeline()
	rng := pipe.LRange(ctx, k, 0, -1)
	pipe.Del(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("flash pop: %w", err)
	}

	raw := rng.Val()
	out := make([]domain.Flash, 0, len(raw))
	for _, r := range raw {
		var f domain.Flash
		if err := json.Unmarshal([]byte(r), &f); err != nil {
			return nil, fmt.Errorf("flash decode: %w", err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *FlashStore) key(id string) string {
	return "flash:" + id
}
