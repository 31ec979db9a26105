package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/publishing-api/internal/validator"
)

func ptr[T any](v T) *T {
	return &v
}

func TestAuthorLifecycle(t *testing.T) {
	authors := NewModels(newTestDB(t)).Authors
	ctx := context.Background()

	created, err := authors.Insert(ctx, &AuthorInput{
		Name:  "Virginia Woolf",
		Email: ptr("virginia@example.com"),
		Bio:   ptr("Modernist author"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "Virginia Woolf", created.Name)
	assert.Equal(t, "virginia@example.com", *created.Email)
	assert.Equal(t, "Modernist author", *created.Bio)
	require.NotNil(t, created.DateRegistered)

	fetched, err := authors.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := authors.Update(ctx, created.ID, &AuthorInput{Name: "Adeline Virginia Woolf"})
	require.NoError(t, err)
	assert.Equal(t, "Adeline Virginia Woolf", updated.Name)
	assert.Nil(t, updated.Email, "omitted fields are cleared by a full replace")
	assert.Nil(t, updated.Bio)
	assert.Equal(t, created.DateRegistered, updated.DateRegistered)

	fetched, err = authors.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)

	require.NoError(t, authors.Delete(ctx, created.ID))

	_, err = authors.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAuthorNotFound(t *testing.T) {
	authors := NewModels(newTestDB(t)).Authors
	ctx := context.Background()

	for _, id := range []int64{9999, 0, -1} {
		_, err := authors.Get(ctx, id)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, &NotFoundError{Entity: "Author", ID: id}, nf)

		_, err = authors.Update(ctx, id, &AuthorInput{Name: "Nobody"})
		assert.ErrorIs(t, err, ErrRecordNotFound)

		err = authors.Delete(ctx, id)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	}

	var n int
	require.NoError(t, authors.DB.QueryRow("SELECT count(*) FROM authors WHERE name = 'Nobody'").Scan(&n))
	assert.Zero(t, n)
}

func TestAuthorDuplicateEmail(t *testing.T) {
	authors := NewModels(newTestDB(t)).Authors
	ctx := context.Background()

	_, err := authors.Insert(ctx, &AuthorInput{Name: "Impostor", Email: ptr("jane@example.com")})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Author with this email already exists", dup.Error())
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = authors.Update(ctx, 2, &AuthorInput{Name: "George Orwell", Email: ptr("jane@example.com")})
	assert.ErrorIs(t, err, ErrDuplicate)

	orwell, err := authors.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "george@example.com", *orwell.Email)
}

func TestAuthorsWithoutEmailDoNotCollide(t *testing.T) {
	authors := NewModels(newTestDB(t)).Authors
	ctx := context.Background()

	_, err := authors.Insert(ctx, &AuthorInput{Name: "Anonymous"})
	require.NoError(t, err)
	_, err = authors.Insert(ctx, &AuthorInput{Name: "Anonymous"})
	require.NoError(t, err)
}

func TestAuthorGetAll(t *testing.T) {
	authors := NewModels(newTestDB(t)).Authors
	ctx := context.Background()

	all, err := authors.GetAll(ctx, Filters{Limit: DefaultLimit})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Jane Austen", all[0].Name)
	assert.Equal(t, "George Orwell", all[1].Name)

	page, err := authors.GetAll(ctx, Filters{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "George Orwell", page[0].Name)

	empty, err := authors.GetAll(ctx, Filters{Skip: 5, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestValidateAuthor(t *testing.T) {
	tests := []struct {
		name   string
		input  AuthorInput
		errors map[string]string
	}{
		{"valid", AuthorInput{Name: "Jane Austen", Email: ptr("jane@example.com")}, map[string]string{}},
		{"no optional fields", AuthorInput{Name: "Jane Austen"}, map[string]string{}},
		{"blank name", AuthorInput{Name: "  "}, map[string]string{"name": "must be provided"}},
		{"bad email", AuthorInput{Name: "Jane", Email: ptr("jane")}, map[string]string{"email": "must be a valid email address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateAuthor(v, &tt.input)
			assert.Equal(t, tt.errors, v.Errors)
		})
	}
}
