package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"wallet-api/internal/models"
)

// CreateSession records that userID logged in and was given token.
// Tokens are not unique: the same token may be stored any number of times.
func (db *DB) CreateSession(ctx context.Context, token, userID string) error {
	query := db.psql.Insert("sessions").
		Columns("user_id", "token").
		Values(userID, token)

	_, err := query.RunWith(db.conn).ExecContext(ctx)
	return errors.Wrap(err, "create session")
}

// FindSessionByToken returns the oldest session carrying token.
func (db *DB) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	query := db.psql.Select("id", "user_id", "token").
		From("sessions").
		Where(sq.Eq{"token": token}).
		OrderBy("id").
		Limit(1)

	var s models.Session
	err := query.RunWith(db.conn).QueryRowContext(ctx).Scan(&s.ID, &s.UserID, &s.Token)
	if err != nil {
		return nil, errors.Wrap(notFound(err), "find session")
	}
	return &s, nil
}
