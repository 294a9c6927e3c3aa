package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tableflip.dev/todo/pkg/task"
)

type redisPersistence struct {
	client *redis.Client
	addr   string
	db     int
	key    string
}

func newRedis(addr string, db int, key string) *redisPersistence {
	return &redisPersistence{
		client: redis.NewClient(&redis.Options{Addr: addr, DB: db}),
		addr:   addr,
		db:     db,
		key:    key,
	}
}

func (r *redisPersistence) Load(ctx context.Context) (task.List, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return task.List{}, nil
		}
		return nil, fmt.Errorf("store: redis get %s: %w", r.key, err)
	}
	return Decode(val)
}

func (r *redisPersistence) Save(ctx context.Context, tasks task.List) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *redisPersistence) Watch(_ context.Context) (<-chan Event, error) {
	return nil, ErrWatchUnsupported
}

func (r *redisPersistence) Location() string {
	return fmt.Sprintf("redis://%s/%d#%s", r.addr, r.db, r.key)
}

func (r *redisPersistence) Close() error {
	return r.client.Close()
}
