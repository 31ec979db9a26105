package data

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrRecordNotFound is wrapped by every NotFoundError.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicate is wrapped by every DuplicateError.
	ErrDuplicate = errors.New("duplicate value")
)

// NotFoundError reports an id with no matching row, either the entity a
// request addressed or a reference a book pointed at.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// DuplicateError reports a write rejected by a unique constraint.
type DuplicateError struct {
	Entity string
	Field  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// uniqueOr translates a unique violation into a DuplicateError on field and
// returns any other error unchanged.
func uniqueOr(err error, entity, field string) error {
	if isUniqueViolation(err) {
		return &DuplicateError{Entity: entity, Field: field}
	}
	return err
}
