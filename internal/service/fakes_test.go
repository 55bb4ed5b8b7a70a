package service

import (
	"context"

	"github.com/pkg/errors"

	"wallet-api/internal/clients/cache"
	"wallet-api/internal/models"
)

var errBroken = errors.New("connection refused")

// brokenStorage fails every call.
type brokenStorage struct{}

func (brokenStorage) CreateUser(context.Context, string, string, string) (*models.User, error) {
	return nil, errBroken
}

func (brokenStorage) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errBroken
}

func (brokenStorage) CreateSession(context.Context, string, string) error {
	return errBroken
}

func (brokenStorage) FindSessionByToken(context.Context, string) (*models.Session, error) {
	return nil, errBroken
}

func (brokenStorage) CreateEntry(context.Context, *models.Entry) error {
	return errBroken
}

func (brokenStorage) ListEntries(context.Context) ([]models.Entry, error) {
	return nil, errBroken
}

// countingEntries records how often entries were read.
type countingEntries struct {
	entryStorage
	lists int
}

func (c *countingEntries) ListEntries(ctx context.Context) ([]models.Entry, error) {
	c.lists++
	return c.entryStorage.ListEntries(ctx)
}

// mapCache is an in-process sessionCache.
type mapCache struct {
	sessions map[string]*models.Session
	gets     int
	fail     bool
}

func newMapCache() *mapCache {
	return &mapCache{sessions: make(map[string]*models.Session)}
}

func (c *mapCache) GetSession(_ context.Context, token string) (*models.Session, error) {
	c.gets++
	if c.fail {
		return nil, errBroken
	}
	s, ok := c.sessions[token]
	if !ok {
		return nil, cache.ErrMiss
	}
	return s, nil
}

func (c *mapCache) CacheSession(_ context.Context, s *models.Session) error {
	if c.fail {
		return errBroken
	}
	c.sessions[s.Token] = s
	return nil
}

type failingIssuer struct{}

func (failingIssuer) IssueToken() (string, error) {
	return "", errors.New("entropy exhausted")
}
