package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

func NewRedisStorage(client *redis.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStorage{
		client:    client,
		namespace: namespace,
	}
}

// RedisStorage persists the snapshot as a JSON value under a fixed
// namespaced key. No TTL: the cart survives until the user clears it.
type RedisStorage struct {
	client    *redis.Client
	namespace string
}

func (r *RedisStorage) Save(ctx context.Context, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Load(ctx context.Context) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err2 := json.Unmarshal(data, &lines); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot failed: %w", err2)
	}
	return lines, nil
}

func (r *RedisStorage) key() string {
	return fmt.Sprintf("cart:%s", r.namespace)
}
