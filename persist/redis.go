package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"lab_asset_ledger/models"
)

// DefaultRedisKey holds the snapshot when no key is configured.
const DefaultRedisKey = "lab:snapshot"

// RedisStore keeps the snapshot as a JSON value under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedis(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (*models.Snapshot, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Printf("snapshot key %s is corrupt, starting fresh: %v", r.key, err)
		return nil, nil
	}
	return &snap, nil
}

func (r *RedisStore) Save(ctx context.Context, snap *models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, 0).Err()
}

func (r *RedisStore) Close() error { return r.client.Close() }
