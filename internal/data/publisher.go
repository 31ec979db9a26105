package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoideee/publishing-api/internal/validator"
)

type Publisher struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

type PublisherInput struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

func ValidatePublisher(v *validator.Validator, input *PublisherInput) {
	v.Check(validator.NotBlank(input.Name), "name", "must be provided")
	v.Check(validator.MaxChars(input.Name, 500), "name", "must not be more than 500 characters long")

	if input.Email != nil {
		v.Check(validator.Matches(*input.Email, validator.EmailRX), "email", "must be a valid email address")
	}
}

const publisherColumns = `id, name, address, phone, email`

func scanPublisher(row rowScanner) (*Publisher, error) {
	var publisher Publisher
	err := row.Scan(
		&publisher.ID,
		&publisher.Name,
		&publisher.Address,
		&publisher.Phone,
		&publisher.Email,
	)
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

type PublisherModel struct {
	DB *sql.DB
}

func (m PublisherModel) Insert(ctx context.Context, input *PublisherInput) (*Publisher, error) {
	query := `
		INSERT INTO publishers (name, address, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + publisherColumns

	args := []any{input.Name, input.Address, input.Phone, input.Email}

	publisher, err := scanPublisher(m.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, uniqueOr(err, "Publisher", "email")
	}
	return publisher, nil
}

func (m PublisherModel) Get(ctx context.Context, id int64) (*Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE id = $1`

	publisher, err := scanPublisher(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "Publisher", ID: id}
		}
		return nil, err
	}
	return publisher, nil
}

func (m PublisherModel) GetAll(ctx context.Context, filters Filters) ([]*Publisher, error) {
	query := `
		SELECT ` + publisherColumns + `
		FROM publishers
		ORDER BY id
		LIMIT $1 OFFSET $2`

	return queryList(ctx, m.DB, scanPublisher, query, filters.Limit, filters.Skip)
}

func (m PublisherModel) Update(ctx context.Context, id int64, input *PublisherInput) (*Publisher, error) {
	query := `
		UPDATE publishers
		SET name = $1, address = $2, phone = $3, email = $4
		WHERE id = $5
		RETURNING ` + publisherColumns

	args := []any{input.Name, input.Address, input.Phone, input.Email, id}

	var publisher *Publisher
	err := withConn(ctx, m.DB, func(q querier) error {
		found, err := exists(ctx, q, "publishers", id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: "Publisher", ID: id}
		}

		publisher, err = scanPublisher(q.QueryRowContext(ctx, query, args...))
		return uniqueOr(err, "Publisher", "email")
	})
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

func (m PublisherModel) Delete(ctx context.Context, id int64) error {
	return withConn(ctx, m.DB, func(q querier) error {
		found, err := exists(ctx, q, "publishers", id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: "Publisher", ID: id}
		}

		_, err = q.ExecContext(ctx, `DELETE FROM publishers WHERE id = $1`, id)
		return err
	})
}
