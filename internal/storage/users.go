package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"wallet-api/internal/models"
)

// CreateUser inserts a user with a generated ID. It returns ErrDuplicateKey
// when the email is already registered.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	query := db.psql.Insert("users").
		Columns("id", "name", "email", "password_hash").
		Values(u.ID, u.Name, u.Email, u.PasswordHash)

	if _, err := query.RunWith(db.conn).ExecContext(ctx); err != nil {
		if isDuplicateKey(err) {
			return nil, errors.Wrapf(ErrDuplicateKey, "create user %s", email)
		}
		return nil, errors.Wrap(err, "create user")
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := db.psql.Select("id", "name", "email", "password_hash").
		From("users").
		Where(sq.Eq{"email": email})

	var u models.User
	err := query.RunWith(db.conn).QueryRowContext(ctx).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, errors.Wrap(notFound(err), "get user by email")
	}
	return &u, nil
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount(ctx context.Context) (int, error) {
	var count int
	err := db.psql.Select("COUNT(*)").From("users").
		RunWith(db.conn).QueryRowContext(ctx).Scan(&count)
	return count, errors.Wrap(err, "count users")
}
