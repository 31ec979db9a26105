package data

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
)

// Dialect selects the driver and schema flavour of the store. Its value is
// the database/sql driver name.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(driver); d {
	case Postgres, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Neither schema declares foreign keys: a book's author and publisher are
// checked when the book is written and may dangle afterwards.
var schemas = map[Dialect][]string{
	SQLite: {
		`CREATE TABLE authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			bio TEXT,
			date_registered DATE DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE publishers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			address TEXT,
			phone TEXT,
			email TEXT UNIQUE
		)`,
		`CREATE TABLE books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			isbn TEXT UNIQUE,
			publication_date DATE,
			price REAL CHECK (price >= 0),
			genre TEXT,
			author_id INTEGER,
			publisher_id INTEGER
		)`,
	},
	Postgres: {
		`CREATE TABLE authors (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			email text UNIQUE,
			bio text,
			date_registered date DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE publishers (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			address text,
			phone text,
			email text UNIQUE
		)`,
		`CREATE TABLE books (
			id bigserial PRIMARY KEY,
			title text NOT NULL,
			description text,
			isbn text UNIQUE,
			publication_date date,
			price double precision CHECK (price >= 0),
			genre text,
			author_id bigint,
			publisher_id bigint
		)`,
	},
}

var indexes = []string{
	`CREATE INDEX books_genre_idx ON books (genre)`,
	`CREATE INDEX books_author_id_idx ON books (author_id)`,
	`CREATE INDEX books_publisher_id_idx ON books (publisher_id)`,
}

var tableExistsQueries = map[Dialect]string{
	SQLite:   `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'authors'`,
	Postgres: `SELECT count(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = 'authors'`,
}

const seedBookQuery = `
	INSERT INTO books (title, description, isbn, publication_date, price, genre, author_id, publisher_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type seedRow struct {
	query string
	args  []any
}

var seedRows = []seedRow{
	{`INSERT INTO authors (name, email, bio) VALUES ($1, $2, $3)`,
		[]any{"Jane Austen", "jane@example.com", "Famous English novelist known for her six major novels"}},
	{`INSERT INTO authors (name, email, bio) VALUES ($1, $2, $3)`,
		[]any{"George Orwell", "george@example.com", "English novelist and essayist"}},
	{`INSERT INTO publishers (name, address, phone, email) VALUES ($1, $2, $3, $4)`,
		[]any{"Penguin Random House", "123 Publishing St, NY", "555-1234", "info@prh.com"}},
	{`INSERT INTO publishers (name, address, phone, email) VALUES ($1, $2, $3, $4)`,
		[]any{"HarperCollins", "456 Book Ave, CA", "555-5678", "info@harpercollins.com"}},
	{seedBookQuery,
		[]any{"Pride and Prejudice", "A romantic novel of manners", "9780141439518", NewDate(1813, 1, 28), 12.99, "Classic", 1, 1}},
	{seedBookQuery,
		[]any{"1984", "A dystopian social science fiction novel", "9780451524935", NewDate(1949, 6, 8), 14.99, "Dystopian", 2, 2}},
}

// Bootstrap creates the schema and seeds the sample rows when the store has
// no authors table yet. It reports whether it did anything; running it
// against an initialized store is a no-op.
func Bootstrap(ctx context.Context, db *sql.DB, dialect Dialect) (bool, error) {
	stmts, ok := schemas[dialect]
	if !ok {
		return false, fmt.Errorf("unsupported database driver %q", dialect)
	}

	var count int
	err := db.QueryRowContext(ctx, tableExistsQueries[dialect]).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check schema: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, stmt := range slices.Concat(stmts, indexes) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("create schema: %w", err)
		}
	}

	for _, row := range seedRows {
		if _, err := tx.ExecContext(ctx, row.query, row.args...); err != nil {
			return false, fmt.Errorf("seed data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
