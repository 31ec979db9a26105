package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoideee/publishing-api/internal/validator"
)

// Author is one row of the authors table.
type Author struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          *string `json:"email"`
	Bio            *string `json:"bio"`
	DateRegistered *Date   `json:"date_registered"`
}

// AuthorInput is the client-supplied part of an author, used for both create
// and full replacement.
type AuthorInput struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Bio   *string `json:"bio"`
}

func ValidateAuthor(v *validator.Validator, input *AuthorInput) {
	v.Check(validator.NotBlank(input.Name), "name", "must be provided")
	v.Check(validator.MaxChars(input.Name, 500), "name", "must not be more than 500 characters long")

	if input.Email != nil {
		v.Check(validator.Matches(*input.Email, validator.EmailRX), "email", "must be a valid email address")
	}
}

const authorColumns = `id, name, email, bio, date_registered`

func scanAuthor(row rowScanner) (*Author, error) {
	var author Author
	err := row.Scan(
		&author.ID,
		&author.Name,
		&author.Email,
		&author.Bio,
		&author.DateRegistered,
	)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

type AuthorModel struct {
	DB *sql.DB
}

// Insert stores a new author and returns the row as stored, with its id and
// registration date filled in by the database.
func (m AuthorModel) Insert(ctx context.Context, input *AuthorInput) (*Author, error) {
	query := `
		INSERT INTO authors (name, email, bio)
		VALUES ($1, $2, $3)
		RETURNING ` + authorColumns

	author, err := scanAuthor(m.DB.QueryRowContext(ctx, query, input.Name, input.Email, input.Bio))
	if err != nil {
		return nil, uniqueOr(err, "Author", "email")
	}
	return author, nil
}

func (m AuthorModel) Get(ctx context.Context, id int64) (*Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	author, err := scanAuthor(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "Author", ID: id}
		}
		return nil, err
	}
	return author, nil
}

func (m AuthorModel) GetAll(ctx context.Context, filters Filters) ([]*Author, error) {
	query := `
		SELECT ` + authorColumns + `
		FROM authors
		ORDER BY id
		LIMIT $1 OFFSET $2`

	return queryList(ctx, m.DB, scanAuthor, query, filters.Limit, filters.Skip)
}

// Update replaces every client-supplied field of author id.
func (m AuthorModel) Update(ctx context.Context, id int64, input *AuthorInput) (*Author, error) {
	query := `
		UPDATE authors
		SET name = $1, email = $2, bio = $3
		WHERE id = $4
		RETURNING ` + authorColumns

	var author *Author
	err := withConn(ctx, m.DB, func(q querier) error {
		found, err := exists(ctx, q, "authors", id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: "Author", ID: id}
		}

		author, err = scanAuthor(q.QueryRowContext(ctx, query, input.Name, input.Email, input.Bio, id))
		return uniqueOr(err, "Author", "email")
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

// Delete removes author id. Books that reference the author keep the
// reference.
func (m AuthorModel) Delete(ctx context.Context, id int64) error {
	return withConn(ctx, m.DB, func(q querier) error {
		found, err := exists(ctx, q, "authors", id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: "Author", ID: id}
		}

		_, err = q.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
		return err
	})
}
