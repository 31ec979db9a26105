package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"postgres unique", &pq.Error{Code: "23505"}, true},
		{"postgres check", &pq.Error{Code: "23514"}, false},
		{"wrapped postgres unique", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestNotFoundError(t *testing.T) {
	var err error = &NotFoundError{Entity: "Book", ID: 7}
	assert.EqualError(t, err, "Book not found")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NotErrorIs(t, err, ErrDuplicate)
}
