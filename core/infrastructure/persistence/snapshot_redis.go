package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"riichi/common/database"
	"riichi/core/domain/repository"
)

const (
	snapshotKeyPrefix = "riichi:snapshot:"
	eventsKeyPrefix   = "riichi:events:"
	// recentEvents 每个牌桌保留的事件条数
	recentEvents = 256
)

type SnapshotRepository struct {
	redis *database.RedisManager
	ttl   time.Duration
}

// NewSnapshotRepository ttl 为 0 时不过期
func NewSnapshotRepository(redis *database.RedisManager, ttl time.Duration) repository.SnapshotRepository {
	return &SnapshotRepository{redis: redis, ttl: ttl}
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, gameID string, data []byte) error {
	if err := r.redis.Set(ctx, snapshotKeyPrefix+gameID, string(data), r.ttl); err != nil {
		return errors.Join(repository.ErrRedis, err)
	}
	return nil
}

func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, gameID string) ([]byte, error) {
	s, err := r.redis.Get(ctx, snapshotKeyPrefix+gameID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", repository.ErrSnapshotNotFound, gameID)
		}
		return nil, errors.Join(repository.ErrRedis, err)
	}
	return []byte(s), nil
}

func (r *SnapshotRepository) AppendEvent(ctx context.Context, gameID string, data []byte) error {
	if err := r.redis.RPushTrim(ctx, eventsKeyPrefix+gameID, recentEvents, string(data), r.ttl); err != nil {
		return errors.Join(repository.ErrRedis, err)
	}
	return nil
}

func (r *SnapshotRepository) RecentEvents(ctx context.Context, gameID string) ([][]byte, error) {
	items, err := r.redis.LRange(ctx, eventsKeyPrefix+gameID)
	if err != nil {
		return nil, errors.Join(repository.ErrRedis, err)
	}
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out, nil
}
