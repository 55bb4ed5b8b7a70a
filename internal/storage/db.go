package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

type config interface {
	Driver() string
	ConnString() string
}

// DB wraps a sql.DB connection shared by the user, session and entry stores.
type DB struct {
	conn   *sql.DB
	driver string
	psql   sq.StatementBuilderType
}

// NewDB opens a sqlite database at path and runs migrations.
func NewDB(path string) (*DB, error) {
	return open(driverSQLite, path)
}

// Open connects to the database described by config and runs migrations.
func Open(config config) (*DB, error) {
	return open(config.Driver(), config.ConnString())
}

func open(driver, dsn string) (*DB, error) {
	var (
		conn *sql.DB
		err  error
		psql sq.StatementBuilderType
	)

	switch driver {
	case driverSQLite:
		conn, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "cannot open database")
		}
		// One connection: an in-memory database exists per connection, and
		// sqlite serializes writers anyway.
		conn.SetMaxOpenConns(1)
		psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	case driverPostgres:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "cannot parse database url")
		}
		conn = stdlib.OpenDB(*cfg)
		psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "cannot connect to database")
	}

	db := &DB{conn: conn, driver: driver, psql: psql}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return db, nil
}

func (db *DB) migrate() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	timestamp := "DATETIME DEFAULT CURRENT_TIMESTAMP"
	if db.driver == driverPostgres {
		serial = "BIGSERIAL PRIMARY KEY"
		timestamp = "TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP"
	}

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at ` + timestamp + `
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id ` + serial + `,
			user_id TEXT NOT NULL REFERENCES users(id),
			token TEXT NOT NULL,
			created_at ` + timestamp + `
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_token_idx ON sessions (token)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id ` + serial + `,
			value TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT,
			created_at ` + timestamp + `
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Ping verifies the connection is still alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
