package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoideee/publishing-api/internal/validator"
)

// Book is one row of the books table. AuthorID and PublisherID were valid
// when the book was last written but are not kept in sync with deletes.
type Book struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	ISBN            *string  `json:"isbn"`
	PublicationDate *Date    `json:"publication_date"`
	Price           *float64 `json:"price"`
	Genre           *string  `json:"genre"`
	AuthorID        *int64   `json:"author_id"`
	PublisherID     *int64   `json:"publisher_id"`
}

type BookInput struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	ISBN            *string  `json:"isbn"`
	PublicationDate *Date    `json:"publication_date"`
	Price           *float64 `json:"price"`
	Genre           *string  `json:"genre"`
	AuthorID        *int64   `json:"author_id"`
	PublisherID     *int64   `json:"publisher_id"`
}

func (in *BookInput) args() []any {
	return []any{
		in.Title,
		in.Description,
		in.ISBN,
		in.PublicationDate,
		in.Price,
		in.Genre,
		in.AuthorID,
		in.PublisherID,
	}
}

func ValidateBook(v *validator.Validator, input *BookInput) {
	v.Check(validator.NotBlank(input.Title), "title", "must be provided")
	v.Check(validator.MaxChars(input.Title, 500), "title", "must not be more than 500 characters long")

	if input.Price != nil {
		v.Check(*input.Price >= 0, "price", "must be zero or greater")
	}
}

func ValidateBookFilters(v *validator.Validator, f BookFilters) {
	ValidateFilters(v, f.Filters)
}

const bookColumns = `id, title, description, isbn, publication_date, price, genre, author_id, publisher_id`

const insertBookQuery = `
	INSERT INTO books (title, description, isbn, publication_date, price, genre, author_id, publisher_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + bookColumns

func scanBook(row rowScanner) (*Book, error) {
	var book Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Description,
		&book.ISBN,
		&book.PublicationDate,
		&book.Price,
		&book.Genre,
		&book.AuthorID,
		&book.PublisherID,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

type BookModel struct {
	DB *sql.DB
}

// Insert checks the book's author and publisher references and, when they
// hold, stores the book. A missing reference is reported as a NotFoundError
// for the Author or Publisher and nothing is written.
func (m BookModel) Insert(ctx context.Context, input *BookInput) (*Book, error) {
	var book *Book
	err := withConn(ctx, m.DB, func(q querier) error {
		if err := checkReferences(ctx, q, input.AuthorID, input.PublisherID); err != nil {
			return err
		}

		var err error
		book, err = scanBook(q.QueryRowContext(ctx, insertBookQuery, input.args()...))
		return uniqueOr(err, "Book", "isbn")
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (m BookModel) Get(ctx context.Context, id int64) (*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "Book", ID: id}
		}
		return nil, err
	}
	return book, nil
}

func (m BookModel) GetAll(ctx context.Context, filters BookFilters) ([]*Book, error) {
	query, args := buildBookListQuery(filters)
	return queryList(ctx, m.DB, scanBook, query, args...)
}

// Update replaces every client-supplied field of book id. The book must
// exist and its new references must hold before anything is written.
func (m BookModel) Update(ctx context.Context, id int64, input *BookInput) (*Book, error) {
	query := `
		UPDATE books
		SET title = $1, description = $2, isbn = $3, publication_date = $4,
		    price = $5, genre = $6, author_id = $7, publisher_id = $8
		WHERE id = $9
		RETURNING ` + bookColumns

	var book *Book
	err := withConn(ctx, m.DB, func(q querier) error {
		found, err := exists(ctx, q, "books", id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: "Book", ID: id}
		}

		if err := checkReferences(ctx, q, input.AuthorID, input.PublisherID); err != nil {
			return err
		}

		book, err = scanBook(q.QueryRowContext(ctx, query, append(input.args(), id)...))
		return uniqueOr(err, "Book", "isbn")
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (m BookModel) Delete(ctx context.Context, id int64) error {
	return withConn(ctx, m.DB, func(q querier) error {
		found, err := exists(ctx, q, "books", id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: "Book", ID: id}
		}

		_, err = q.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
		return err
	})
}
