package service

import (
	"context"

	"wallet-api/internal/models"
)

type userStorage interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type sessionStorage interface {
	CreateSession(ctx context.Context, token, userID string) error
	FindSessionByToken(ctx context.Context, token string) (*models.Session, error)
}

type entryStorage interface {
	CreateEntry(ctx context.Context, e *models.Entry) error
	ListEntries(ctx context.Context) ([]models.Entry, error)
}

type sessionCache interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
	CacheSession(ctx context.Context, s *models.Session) error
}
