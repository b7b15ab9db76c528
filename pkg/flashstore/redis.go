package flashstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores toast lists as plain string keys with a TTL.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis backend. It panics when client is nil.
func NewRedis(client redis.UniversalClient) *Redis {
	if client == nil {
		panic(ErrNilClient)
	}
	return &Redis{client: client}
}

func (b *Redis) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Pop uses GETDEL so concurrent readers never both see the value.
func (b *Redis) Pop(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	return data, nil
}

func (b *Redis) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}
