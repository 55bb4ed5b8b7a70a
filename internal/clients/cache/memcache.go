package cache

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-api/internal/logger"
	"wallet-api/internal/models"
)

// MemcacheClient caches sessions in memcached.
type MemcacheClient struct {
	client     *memcache.Client
	expiration int32
}

// NewMemcache connects to the configured hosts and pings them.
func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "memcached ping")
	}
	return &MemcacheClient{client: mc, expiration: int32(ttl(config).Seconds())}, nil
}

// GetSession returns ErrMiss when the token is not cached.
func (mc *MemcacheClient) GetSession(_ context.Context, token string) (*models.Session, error) {
	item, err := mc.client.Get(sessionKey(token))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "memcached get")
	}
	return decode(item.Value)
}

// CacheSession stores s under its token with the configured expiration.
func (mc *MemcacheClient) CacheSession(_ context.Context, s *models.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	return errors.Wrap(mc.client.Set(&memcache.Item{
		Key:        sessionKey(s.Token),
		Value:      data,
		Expiration: mc.expiration,
	}), "memcached set")
}
