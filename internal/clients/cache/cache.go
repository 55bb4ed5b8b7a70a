package cache

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"wallet-api/internal/models"
)

// ErrMiss is returned when a token is not cached.
var ErrMiss = errors.New("cache miss")

const (
	keyPrefix  = "session:"
	defaultTTL = 10 * time.Minute
)

type config interface {
	Driver() string
	Addr() string
	Hosts() []string
	TTL() int64
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func ttl(config config) time.Duration {
	if config.TTL() > 0 {
		return time.Duration(config.TTL()) * time.Second
	}
	return defaultTTL
}

func encode(s *models.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	return data, errors.Wrap(err, "encode session")
}

func decode(data []byte) (*models.Session, error) {
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &s, nil
}
