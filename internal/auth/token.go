package auth

import (
	"github.com/google/uuid"
)

// TokenIssuer hands out the bearer token recorded for a successful login.
type TokenIssuer interface {
	IssueToken() (string, error)
}

// SharedTokenIssuer returns the same token, generated once at construction,
// to every caller. Any stored session carrying it authorizes its bearer.
type SharedTokenIssuer struct {
	token string
}

// NewSharedTokenIssuer generates the process-wide token.
func NewSharedTokenIssuer() (*SharedTokenIssuer, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	return &SharedTokenIssuer{token: token}, nil
}

// IssueToken returns the process-wide token.
func (i *SharedTokenIssuer) IssueToken() (string, error) {
	return i.token, nil
}

// PerLoginTokenIssuer returns a fresh random token on every call.
type PerLoginTokenIssuer struct{}

// IssueToken returns a new random token.
func (PerLoginTokenIssuer) IssueToken() (string, error) {
	return GenerateSessionToken()
}

// GenerateSessionToken returns a random v4 UUID string.
func GenerateSessionToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
