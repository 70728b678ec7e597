package floorRepository

import (
	"KukoRobot/internal/api/floor"
	redisPkg "KukoRobot/pkg/redis"
	"context"
	"errors"
	"time"
)

const LatestSnapshotKey = "kuko:snapshot:latest"

type redisStore struct {
	redis redisPkg.IRedis
	ttl   time.Duration
}

// NewRedisStore caches only the latest snapshot; annotated frames are not kept.
func NewRedisStore(redis redisPkg.IRedis, ttl time.Duration) SnapshotStore {
	if redis == nil {
		return nil
	}
	return &redisStore{redis: redis, ttl: ttl}
}

func (s *redisStore) Name() string {
	return "redis"
}

func (s *redisStore) Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error) {
	data, err := json.Marshal(artifacts.Snapshot)
	if err != nil {
		return nil, err
	}

	if err := s.redis.SetValue(ctx, LatestSnapshotKey, string(data), s.ttl); err != nil {
		return nil, err
	}

	return []string{"redis://" + LatestSnapshotKey}, nil
}

func (s *redisStore) Latest(ctx context.Context) (*floor.Snapshot, error) {
	val, err := s.redis.GetValue(ctx, LatestSnapshotKey)
	if errors.Is(err, redisPkg.ErrKeyNotFound) {
		return nil, floor.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeSnapshot([]byte(val))
}
