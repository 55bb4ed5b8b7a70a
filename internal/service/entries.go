package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-api/internal/clients/cache"
	"wallet-api/internal/logger"
	"wallet-api/internal/models"
	"wallet-api/internal/storage"
)

const bearerPrefix = "Bearer "

// EntryService accepts entries from anyone and lists them to callers holding
// a stored session token.
type EntryService struct {
	entries  entryStorage
	sessions sessionStorage
	cache    sessionCache
}

// NewEntryService creates an EntryService. cache may be nil.
func NewEntryService(entries entryStorage, sessions sessionStorage, cache sessionCache) *EntryService {
	return &EntryService{entries: entries, sessions: sessions, cache: cache}
}

// Submit validates and stores an entry.
func (s *EntryService) Submit(ctx context.Context, in EntryInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	e := &models.Entry{
		Value:       in.Value,
		Description: in.Description,
		Status:      in.Status.Ptr(),
	}
	if err := s.entries.CreateEntry(ctx, e); err != nil {
		return storageError(err, "submit entry")
	}
	return nil
}

// List returns all entries if authorization carries a known bearer token.
func (s *EntryService) List(ctx context.Context, authorization string) ([]models.Entry, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return nil, errors.Wrap(ErrUnauthorized, "missing bearer token")
	}

	if err := s.authorize(ctx, token); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntries(ctx)
	if err != nil {
		return nil, storageError(err, "list entries")
	}
	return entries, nil
}

func (s *EntryService) authorize(ctx context.Context, token string) error {
	if s.cache != nil {
		_, err := s.cache.GetSession(ctx, token)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("session cache lookup failed", zap.Error(err))
		}
	}

	session, err := s.sessions.FindSessionByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return errors.Wrap(ErrUnauthorized, "unknown token")
	}
	if err != nil {
		return storageError(err, "find session")
	}

	if s.cache != nil {
		if err = s.cache.CacheSession(ctx, session); err != nil {
			logger.Warn("session cache store failed", zap.Error(err))
		}
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
// The "Bearer " prefix is case-sensitive.
func BearerToken(authorization string) (string, bool) {
	token, found := strings.CutPrefix(authorization, bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}
