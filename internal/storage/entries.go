package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"wallet-api/internal/logger"
	"wallet-api/internal/models"

	"go.uber.org/zap"
)

// CreateEntry inserts e and sets its ID.
func (db *DB) CreateEntry(ctx context.Context, e *models.Entry) error {
	query := db.psql.Insert("entries").
		Columns("value", "description", "status").
		Values(e.Value, e.Description, e.Status).
		Suffix("RETURNING id")

	err := query.RunWith(db.conn).QueryRowContext(ctx).Scan(&e.ID)
	return errors.Wrap(err, "create entry")
}

// ListEntries returns every entry in insertion order.
func (db *DB) ListEntries(ctx context.Context) ([]models.Entry, error) {
	query := db.psql.Select("id", "value", "description", "status").
		From("entries").
		OrderBy("id")

	rows, err := query.RunWith(db.conn).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list entries")
	}
	defer func() {
		if rowErr := rows.Close(); rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var (
			e      models.Entry
			status sql.NullString
		)
		if err = rows.Scan(&e.ID, &e.Value, &e.Description, &status); err != nil {
			return nil, errors.Wrap(err, "list entries")
		}
		if status.Valid {
			e.Status = &status.String
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list entries")
	}
	return entries, nil
}
