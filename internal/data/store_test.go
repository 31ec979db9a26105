package data

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh SQLite store under t.TempDir and seeds it.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(string(SQLite), filepath.Join(t.TempDir(), "publishing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	created, err := Bootstrap(context.Background(), db, SQLite)
	require.NoError(t, err)
	require.True(t, created)

	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestBootstrapSeedsOnce(t *testing.T) {
	db := newTestDB(t)

	created, err := Bootstrap(context.Background(), db, SQLite)
	require.NoError(t, err)
	assert.False(t, created, "second bootstrap must leave an existing store alone")

	for _, table := range []string{"authors", "publishers", "books"} {
		assert.Equal(t, 2, countRows(t, db, table), table)
	}
}

func TestBootstrapSeedData(t *testing.T) {
	models := NewModels(newTestDB(t))
	ctx := context.Background()

	book, err := models.Books.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pride and Prejudice", book.Title)
	assert.Equal(t, "9780141439518", *book.ISBN)
	assert.Equal(t, NewDate(1813, 1, 28), *book.PublicationDate)
	assert.InDelta(t, 12.99, *book.Price, 0.0001)
	assert.Equal(t, "Classic", *book.Genre)
	assert.Equal(t, int64(1), *book.AuthorID)
	assert.Equal(t, int64(1), *book.PublisherID)

	author, err := models.Authors.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "George Orwell", author.Name)
	assert.NotNil(t, author.DateRegistered)

	publisher, err := models.Publishers.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "HarperCollins", publisher.Name)
	assert.Equal(t, "info@harpercollins.com", *publisher.Email)
}

func TestBootstrapUnknownDialect(t *testing.T) {
	db := newTestDB(t)

	_, err := Bootstrap(context.Background(), db, Dialect("mysql"))
	assert.Error(t, err)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = ParseDialect("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = ParseDialect("mysql")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}
