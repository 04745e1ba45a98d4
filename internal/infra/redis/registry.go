package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// DefaultRegistryKey is the set holding every known quiz id.
const DefaultRegistryKey = "quiz:registry"

// Registry keeps quiz ids in a Redis set so several service instances share
// one discovery view.
//
//	SADD quiz:registry {quizID}
type Registry struct {
	client *redis.Client
	key    string
}

func NewRegistry(client *redis.Client, key string) *Registry {
	if key == "" {
		key = DefaultRegistryKey
	}
	return &Registry{client: client, key: key}
}

func (r *Registry) Add(ctx context.Context, quizID string) error {
	if err := r.client.SAdd(ctx, r.key, quizID).Err(); err != nil {
		return fmt.Errorf("registry add: %w", err)
	}
	return nil
}

func (r *Registry) Contains(ctx context.Context, quizID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, quizID).Result()
	if err != nil {
		return false, fmt.Errorf("registry contains: %w", err)
	}
	return ok, nil
}

func (r *Registry) Count(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("registry count: %w", err)
	}
	return int(n), nil
}

// List returns ids in lexical order.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("registry list: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
