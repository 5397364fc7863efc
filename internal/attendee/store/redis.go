package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"eventdesk/internal/attendee/models"
)

// SnapshotKey holds the registry snapshot in Redis.
const SnapshotKey = "eventdesk:snapshot"

// RedisStore keeps the same JSON snapshot as FileStore in a Redis string.
// Backups are copies under eventdesk:<prefix>:<stamp>.
type RedisStore struct {
	client  redis.Cmdable
	options options
}

func NewRedisStore(client redis.Cmdable, opts ...Option) *RedisStore {
	return &RedisStore{client: client, options: buildOptions(opts)}
}

func (s *RedisStore) Load(ctx context.Context) (*models.Registry, error) {
	raw, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return Decode(bytes.NewReader(raw))
}

// Save overwrites the snapshot with a single SET, which Redis applies atomically.
func (s *RedisStore) Save(ctx context.Context, reg *models.Registry) error {
	data, err := Encode(reg)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, SnapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Backup(ctx context.Context, manual bool) (string, error) {
	raw, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get snapshot: %w", err)
	}
	base := fmt.Sprintf("eventdesk:%s:%s", backupPrefix(manual), s.options.now().Format(backupStampLayout))
	key := base
	for n := 1; ; n++ {
		ok, err := s.client.SetNX(ctx, key, raw, 0).Result()
		if err != nil {
			return "", fmt.Errorf("write backup: %w", err)
		}
		if ok {
			return key, nil
		}
		key = fmt.Sprintf("%s_%d", base, n)
	}
}
