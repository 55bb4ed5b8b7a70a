package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wallet-api/internal/logger"
	"wallet-api/internal/models"
)

// RedisClient caches sessions in redis.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the configured address and pings it.
func NewRedis(ctx context.Context, config config) (*RedisClient, error) {
	logger.Info("redis address", zap.String("addr", config.Addr()))
	rdb := redis.NewClient(&redis.Options{Addr: config.Addr()})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return &RedisClient{client: rdb, ttl: ttl(config)}, nil
}

// GetSession returns ErrMiss when the token is not cached.
func (rc *RedisClient) GetSession(ctx context.Context, token string) (*models.Session, error) {
	data, err := rc.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return decode(data)
}

// CacheSession stores s under its token for the configured TTL.
func (rc *RedisClient) CacheSession(ctx context.Context, s *models.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	return errors.Wrap(rc.client.Set(ctx, sessionKey(s.Token), data, rc.ttl).Err(), "redis set")
}

// Close releases the connection pool.
func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
