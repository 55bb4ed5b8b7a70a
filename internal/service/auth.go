package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-api/internal/auth"
	"wallet-api/internal/logger"
	"wallet-api/internal/storage"
)

// LoginResult is returned to a caller that signed in.
type LoginResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// AuthService registers users and signs them in.
type AuthService struct {
	users    userStorage
	sessions sessionStorage
	issuer   auth.TokenIssuer
}

// NewAuthService wires the credential and session stores with a token issuer.
func NewAuthService(users userStorage, sessions sessionStorage, issuer auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, sessions: sessions, issuer: issuer}
}

// Register stores a new user with a bcrypt hash of the password.
// A duplicate email is reported as a storage failure.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return storageError(err, "hash password")
	}

	if _, err = s.users.CreateUser(ctx, in.Name, in.Email, hash); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			logger.Warn("sign-up with registered email", zap.String("email", in.Email))
		}
		return storageError(err, "register")
	}
	return nil
}

// Login checks the credentials and records a session for the issued token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errors.Wrap(ErrUnauthorized, "unknown email")
	}
	if err != nil {
		return nil, storageError(err, "login")
	}

	if !auth.CheckPassword(in.Password, user.PasswordHash) {
		return nil, errors.Wrap(ErrUnauthorized, "wrong password")
	}

	token, err := s.issuer.IssueToken()
	if err != nil {
		return nil, storageError(err, "issue token")
	}

	if err = s.sessions.CreateSession(ctx, token, user.ID); err != nil {
		return nil, storageError(err, "login")
	}

	return &LoginResult{Token: token, Name: user.Name}, nil
}
