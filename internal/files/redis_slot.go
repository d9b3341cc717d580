package files

import (
	"context"
	"errors"
	"fmt"

	"github.com/boxity/boxity/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the slot under a single redis key. Swap is safe across
// processes: it runs inside WATCH/MULTI and a concurrent write aborts it.
type RedisSlot struct {
	client *redis.Client
	key    string
}

func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

// NewRedisClient connects and pings redis.
func NewRedisClient(ctx context.Context, cfg config.Redis) (client *redis.Client, err error) {
	opts := redis.Options{
		ClientName:      "boxity",
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:        cfg.User,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		PoolSize:        cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	client = redis.NewClient(&opts)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	err = client.Ping(pingCtx).Err()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisSlot) Name() string { return "redis:" + s.key }

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	return data, err
}

func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisSlot) Swap(ctx context.Context, version string, data []byte) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if version != "" {
				return ErrConflict
			}
		case err != nil:
			return err
		case Version(current) != version:
			return ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}, s.key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	return err
}

func (s *RedisSlot) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
