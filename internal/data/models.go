// Package data holds the record types of the publishing API and the
// repositories that read and write them.
package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoideee/publishing-api/internal/validator"
)

// Models groups the repositories. Every repository shares the pool handed to
// NewModels.
type Models struct {
	Authors    AuthorModel
	Publishers PublisherModel
	Books      BookModel
}

func NewModels(db *sql.DB) Models {
	return Models{
		Authors:    AuthorModel{DB: db},
		Publishers: PublisherModel{DB: db},
		Books:      BookModel{DB: db},
	}
}

// DefaultLimit is the page size used when a list request gives no limit.
const DefaultLimit = 100

// Filters holds the offset pagination shared by every list operation.
type Filters struct {
	Skip  int
	Limit int
}

func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.Skip >= 0, "skip", "must be zero or greater")
	v.Check(f.Limit >= 0, "limit", "must be zero or greater")
}

// querier is the statement surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// withConn checks one connection out of the pool for the length of fn and
// returns it to the pool however fn ends.
func withConn(ctx context.Context, db *sql.DB, fn func(q querier) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

// exists looks up id in table. table is always one of the package's own
// table names, never caller input.
func exists(ctx context.Context, q querier, table string, id int64) (bool, error) {
	var found int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = $1", id).Scan(&found)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// queryList runs query and scans every row with scan.
func queryList[T any](ctx context.Context, q querier, scan func(rowScanner) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*T{}
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
